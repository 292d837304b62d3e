package cli

import "tsplit/internal/config"

// Flags holds command-line flags
type Flags struct {
	Token       string
	User        string
	Project     string
	Branch      string
	Pattern     string
	NameFilter  string
	Nodes       int
	Mode        string
	Index       int
	NoHistory   bool
	ReportFile  string
	Verbosity   int
	ConfigFile  string
	Interactive bool
	ShowFiles   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Token:       f.Token,
		User:        f.User,
		Project:     f.Project,
		Branch:      f.Branch,
		Pattern:     f.Pattern,
		NameFilter:  f.NameFilter,
		Nodes:       f.Nodes,
		Mode:        f.Mode,
		Index:       f.Index,
		NoHistory:   f.NoHistory,
		ReportFile:  f.ReportFile,
		Verbosity:   f.Verbosity,
		ConfigFile:  f.ConfigFile,
		Interactive: f.Interactive,
		ShowFiles:   f.ShowFiles,
	}
}
