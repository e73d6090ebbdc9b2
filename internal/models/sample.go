package models

// SampleMetadata is the harmonized metadata block of a sample.
type SampleMetadata struct {
	AgeAtDiagnosis               *Age         `json:"age_at_diagnosis" yaml:"age_at_diagnosis,omitempty"`
	AgeAtCollection              *Age         `json:"age_at_collection" yaml:"age_at_collection,omitempty"`
	AnatomicalSites              []Field      `json:"anatomical_sites" yaml:"anatomical_sites,omitempty"`
	Diagnosis                    *Field       `json:"diagnosis" yaml:"diagnosis,omitempty"`
	DiseasePhase                 *Field       `json:"disease_phase" yaml:"disease_phase,omitempty"`
	LibrarySelectionMethod       *Field       `json:"library_selection_method" yaml:"library_selection_method,omitempty"`
	LibraryStrategy              *Field       `json:"library_strategy" yaml:"library_strategy,omitempty"`
	LibrarySourceMaterial        *Field       `json:"library_source_material" yaml:"library_source_material,omitempty"`
	PreservationMethod           *Field       `json:"preservation_method" yaml:"preservation_method,omitempty"`
	SpecimenMolecularAnalyteType *Field       `json:"specimen_molecular_analyte_type" yaml:"specimen_molecular_analyte_type,omitempty"`
	TissueType                   *Field       `json:"tissue_type" yaml:"tissue_type,omitempty"`
	TumorClassification          *Field       `json:"tumor_classification" yaml:"tumor_classification,omitempty"`
	TumorGrade                   *Field       `json:"tumor_grade" yaml:"tumor_grade,omitempty"`
	TumorTissueMorphology        *Field       `json:"tumor_tissue_morphology" yaml:"tumor_tissue_morphology,omitempty"`
	Depositions                  []Deposition `json:"depositions" yaml:"depositions,omitempty"`
	Unharmonized                 Unharmonized `json:"unharmonized,omitempty" yaml:"unharmonized,omitempty"`
}

// Sample is a biospecimen collected from a subject.
type Sample struct {
	Identifier Identifier      `json:"id" yaml:"id"`
	Subject    Identifier      `json:"subject" yaml:"subject"`
	Metadata   *SampleMetadata `json:"metadata" yaml:"metadata,omitempty"`
}

// ID returns the sample identifier.
func (s Sample) ID() Identifier { return s.Identifier }
