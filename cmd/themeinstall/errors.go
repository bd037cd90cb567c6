package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/themekit/themeinstall/internal/binary"
	"github.com/themekit/themeinstall/internal/config"
	"github.com/themekit/themeinstall/internal/download"
	"github.com/themekit/themeinstall/internal/installer"
	"github.com/themekit/themeinstall/internal/platform"
	"github.com/themekit/themeinstall/internal/release"
)

// diagnosis is what the user sees for a failed command.
type diagnosis struct {
	headline string
	hints    []string
}

// diagnose classifies err into a headline and follow-up hints.
func diagnose(err error) diagnosis {
	var (
		unsupported *platform.UnsupportedPlatformError
		notFound    *release.PlatformNotFoundError
		noVersion   *release.VersionNotFoundError
		badVersion  *release.InvalidVersionError
		parseErr    *release.ManifestParseError
		fetchErr    *download.FetchError
		mismatch    *binary.ChecksumMismatchError
		sigErr      *binary.SignatureError
		fsErr       *binary.FilesystemError
	)

	switch {
	case errors.As(err, &unsupported):
		return diagnosis{
			headline: fmt.Sprintf("Cannot find binary to match your architecture [%s]", unsupported.Key),
			hints:    []string{"Please open an issue at " + linkStyle.Render(installer.IssuesURL)},
		}
	case errors.As(err, &notFound):
		return diagnosis{
			headline: fmt.Sprintf("Theme Kit %s was not published for %s", notFound.Version, notFound.Platform),
			hints:    []string{"Please open an issue at " + linkStyle.Render(installer.IssuesURL)},
		}
	case errors.As(err, &noVersion):
		return diagnosis{
			headline: fmt.Sprintf("Theme Kit version %s does not exist", noVersion.Version),
			hints:    []string{"Run `themeinstall releases` to see the published versions"},
		}
	case errors.As(err, &badVersion):
		return diagnosis{
			headline: fmt.Sprintf("%q is not a valid Theme Kit version", badVersion.Version),
			hints: []string{
				fmt.Sprintf("Pass --%s latest or a version such as 1.3.2", config.FlagName(config.KeyRelease)),
				"Run `themeinstall releases` to see the published versions",
			},
		}
	case errors.As(err, &mismatch):
		return diagnosis{
			headline: "Theme Kit was not installed: checksum verification failed",
			hints:    []string{fmt.Sprintf("expected %s, got %s", mismatch.Expected, mismatch.Actual)},
		}
	case errors.As(err, &sigErr):
		return diagnosis{
			headline: "Downloaded binary failed signature verification.",
			hints:    []string{sigErr.Error()},
		}
	case errors.As(err, &parseErr):
		return diagnosis{
			headline: "Release data could not be read",
			hints:    []string{parseErr.Error()},
		}
	case errors.As(err, &fsErr):
		return diagnosis{
			headline: fmt.Sprintf("Could not install to %s", fsErr.Path),
			hints: []string{
				fsErr.Error(),
				fmt.Sprintf("Choose a writable directory with --%s or run with elevated permissions", config.FlagName(config.KeyInstallPath)),
			},
		}
	case errors.Is(err, context.Canceled):
		return diagnosis{headline: "Installation cancelled"}
	case errors.As(err, &fetchErr):
		return diagnosis{
			headline: "Could not download release data",
			hints:    []string{fetchErr.Error()},
		}
	default:
		return diagnosis{headline: fmt.Sprintf("Error: %v", err)}
	}
}

// renderError writes the diagnosis for err to w.
func renderError(w io.Writer, err error) {
	d := diagnose(err)

	fmt.Fprintln(w, errorStyle.Render(d.headline))
	for _, hint := range d.hints {
		fmt.Fprintln(w, hintStyle.Render(hint))
	}
}
