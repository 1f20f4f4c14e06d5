package app

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/ui/style"
	"go.trai.ch/zerr"
)

// Status prints the resolved target, the expected artifacts with their
// presence, and the stored provision records. It never provisions anything.
func (a *App) Status(o Overrides) error {
	cfg, err := a.LoadConfig(o)
	if err != nil {
		return err
	}

	var sb strings.Builder
	variant := domain.ResolveVariant(cfg.Target)
	writeField(&sb, "Target", cfg.Target.String()+" ("+variant.String()+")")
	writeField(&sb, "Strategy", string(cfg.Strategy))

	platform, ok := cfg.Platform(variant)
	switch {
	case variant == domain.VariantUnsupported || !ok:
		writeField(&sb, "Bundle", "none, nothing is linked for this target")
	case !cfg.Strategy.Supports(variant):
		writeField(&sb, "Bundle", string(cfg.Strategy)+" cannot provision "+variant.String())
	default:
		dir, files := expectedArtifacts(cfg, platform)
		writeField(&sb, "Bundle", dir)
		missing, err := a.verifier.MissingArtifacts(dir, files)
		if err != nil {
			return err
		}
		for _, f := range files {
			if slices.Contains(missing, f) {
				sb.WriteString("  " + style.Missing.Render(style.Cross+" "+f) + "\n")
			} else {
				sb.WriteString("  " + style.Present.Render(style.Check+" "+f) + "\n")
			}
		}
		if !platform.SearchPath {
			sb.WriteString("  " + style.Label.Render("resolved by the system linker") + "\n")
		}
	}

	records, err := a.store.List(cfg.StateDir)
	if err != nil {
		return err
	}
	sb.WriteString(style.Heading.Render("Records") + "\n")
	if len(records) == 0 {
		sb.WriteString("  " + style.Label.Render("none") + "\n")
	}
	for _, rec := range records {
		detail := rec.Timestamp.Format(time.RFC3339)
		if rec.Digest != "" {
			detail += " " + rec.Digest
		}
		if rec.InputHash != "" {
			detail += " input " + rec.InputHash
		}
		fmt.Fprintf(&sb, "  %s %s\n", rec.Key, style.Label.Render(detail))
	}

	if _, err := a.stdout.Write([]byte(sb.String())); err != nil {
		return zerr.Wrap(err, domain.ErrRenderFailed.Error())
	}
	return nil
}

func writeField(sb *strings.Builder, name, value string) {
	sb.WriteString(style.Heading.Render(fmt.Sprintf("%-9s", name)) + " " + value + "\n")
}

// expectedArtifacts returns where the configured strategy places the
// artifacts of a platform and which files it produces.
func expectedArtifacts(cfg domain.Config, platform domain.Platform) (string, []string) {
	var files []string
	switch cfg.Strategy {
	case domain.StrategySource:
		for _, lib := range domain.Libraries() {
			files = append(files, domain.ArtifactFile(platform.Variant, lib.Name, domain.LinkStatic))
		}
		return filepath.Join(cfg.OutDir, domain.LibDirName), files
	case domain.StrategyDownload:
		for _, lib := range domain.Libraries() {
			base := "lib" + lib.Name + cfg.Download.ABISuffix
			files = append(files, base+".dll", base+".lib")
		}
		return cfg.OutDir, files
	default:
		for _, lib := range domain.Libraries() {
			files = append(files, domain.ArtifactFile(platform.Variant, lib.Name, platform.Link))
		}
		return filepath.Join(cfg.PrecompiledDir, filepath.FromSlash(platform.Dir)), files
	}
}
