package domain

import "time"

// ProvisionRecord describes an artifact produced by a provisioning run.
type ProvisionRecord struct {
	Key       string    `json:"key,omitzero"`
	Strategy  Strategy  `json:"strategy,omitzero"`
	Library   string    `json:"library,omitzero"`
	Artifact  string    `json:"artifact,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// RecordKey builds the store key of a record.
func RecordKey(s Strategy, name string) string {
	return string(s) + "/" + name
}
