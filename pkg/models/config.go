package models

type Config struct {
	Snowflake Snowflake `yaml:"snowflake"`
	Dataset   Dataset   `yaml:"dataset"`
	Load      Load      `yaml:"load"`
	Reports   Reports   `yaml:"reports"`
}

type Snowflake struct {
	Account    string `yaml:"account"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Role       string `yaml:"role"`
	Warehouse  string `yaml:"warehouse"`
	Database   string `yaml:"database"`
	Schema     string `yaml:"schema"`
	UseKeyring bool   `yaml:"use_keyring"` // Password lives in the OS keyring instead of this file
	Timeout    string `yaml:"timeout"`     // e.g. "30s"
}

// Dataset describes the source file and how it gets partitioned
type Dataset struct {
	SourcePath    string `yaml:"source_path"`
	OutputDir     string `yaml:"output_dir"`
	Prefix        string `yaml:"prefix"`
	ChunkCount    int    `yaml:"chunk_count"`     // Even-distribution mode
	LinesPerChunk int    `yaml:"lines_per_chunk"` // Single-pass mode, takes precedence when set
}

// Load describes the staging and bulk-load targets
type Load struct {
	Stage          string `yaml:"stage"`
	Table          string `yaml:"table"`
	FileFormat     string `yaml:"file_format"`
	Parallel       int    `yaml:"parallel"`         // PUT upload threads per file
	AutoCompress   bool   `yaml:"auto_compress"`    // gzip files during PUT
	PurgeAfterLoad bool   `yaml:"purge_after_load"` // Remove staged files after COPY
}

// Reports controls report rendering
type Reports struct {
	Limit int `yaml:"limit"` // Row cap per report table
}
