package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	MappingFile        string   `json:"mapping_file" yaml:"mapping_file" toml:"mapping_file"`
	ReportName         string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType         []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir                string   `json:"dir" yaml:"dir" toml:"dir"`
	HeaderRow          *int     `json:"header_row" yaml:"header_row" toml:"header_row"`
	GroupLabel         string   `json:"group_label" yaml:"group_label" toml:"group_label"`
	ImplicitGroupLabel string   `json:"implicit_group_label" yaml:"implicit_group_label" toml:"implicit_group_label"`
	Lenient            bool     `json:"lenient" yaml:"lenient" toml:"lenient"`
	AWSProfile         string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion          string   `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
	ListenAddr         string   `json:"listen_addr" yaml:"listen_addr" toml:"listen_addr"`
}
