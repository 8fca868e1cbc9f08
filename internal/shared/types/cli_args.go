package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile         string
	Input              string
	MappingFile        string
	ReportName         string
	ReportType         []string
	Dir                string
	HeaderRow          int
	GroupLabel         string
	ImplicitGroupLabel string
	Lenient            bool
	RegisterUnknown    bool
	Verbose            bool
	AWSProfile         string
	AWSRegion          string
	ListenAddr         string
}
