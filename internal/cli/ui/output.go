package ui

import (
	"fmt"
	"os"

	"github.com/kobaltcore/renutil/internal/core/registry"
	"github.com/kobaltcore/renutil/internal/core/release"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// Print functions for consistent output

func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// OutputLine prints a formatted line to stdout
func OutputLine(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// PrintInstalledList displays installed versions using a table
func PrintInstalledList(versions []version.Version) {
	if len(versions) == 0 {
		Info("No instances are currently installed")
		return
	}

	tbl := NewTable("VERSION")
	for _, v := range versions {
		tbl.AddRow(v.String())
	}
	tbl.Print()
}

// PrintAvailableList displays remotely available releases using a table
func PrintAvailableList(releases []release.Release) {
	if len(releases) == 0 {
		Info("No releases are available")
		return
	}

	tbl := NewTable("VERSION", "URL")
	for _, r := range releases {
		tbl.AddRow(r.Version.String(), DimStyle.Render(r.URL))
	}
	tbl.Print()
}

// PrintDoctorReport displays a cache divergence report
func PrintDoctorReport(report registry.Report) {
	if report.Clean() {
		Success("Registry and cache directory agree")
		return
	}

	for _, folder := range report.Untracked {
		Warning("Folder on disk but not registered: %s", folder)
	}
	for _, v := range report.Missing {
		Warning("Registered but folder missing: %s", v)
	}
	OutputLine("")
	OutputLine("Reinstall or uninstall the affected versions to resolve; nothing was changed")
}
