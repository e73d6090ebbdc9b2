package models

// Checksums holds the digests recorded for a file.
type Checksums struct {
	MD5 string `json:"md5,omitempty" yaml:"md5,omitempty"`
}

// Values returns the non-empty digests.
func (c Checksums) Values() []string {
	var out []string
	if c.MD5 != "" {
		out = append(out, c.MD5)
	}
	return out
}

// FileMetadata is the harmonized metadata block of a file.
type FileMetadata struct {
	Type         *Field       `json:"type" yaml:"type,omitempty"`
	Size         *int64       `json:"size" yaml:"size,omitempty"`
	Checksums    *Checksums   `json:"checksums" yaml:"checksums,omitempty"`
	Description  *string      `json:"description" yaml:"description,omitempty"`
	Depositions  []Deposition `json:"depositions" yaml:"depositions,omitempty"`
	Unharmonized Unharmonized `json:"unharmonized,omitempty" yaml:"unharmonized,omitempty"`
}

// File is a data file derived from one or more samples.
type File struct {
	Identifier Identifier    `json:"id" yaml:"id"`
	Samples    []Identifier  `json:"samples" yaml:"samples"`
	Metadata   *FileMetadata `json:"metadata" yaml:"metadata,omitempty"`
}

// ID returns the file identifier.
func (f File) ID() Identifier { return f.Identifier }
