package models

// SubjectKind classifies the kind of subject.
type SubjectKind string

const (
	SubjectKindParticipant             SubjectKind = "Participant"
	SubjectKindPatientDerivedXenograft SubjectKind = "Patient Derived Xenograft"
	SubjectKindCellLine                SubjectKind = "Cell Line"
	SubjectKindOrganoid                SubjectKind = "Organoid"
)

// ValidSubjectKinds is the set of all valid subject kinds.
var ValidSubjectKinds = []SubjectKind{
	SubjectKindParticipant,
	SubjectKindPatientDerivedXenograft,
	SubjectKindCellLine,
	SubjectKindOrganoid,
}

// IsValid returns true if the subject kind is recognized.
func (k SubjectKind) IsValid() bool {
	for i := range ValidSubjectKinds {
		if k == ValidSubjectKinds[i] {
			return true
		}
	}
	return false
}

// SubjectMetadata is the harmonized metadata block of a subject. A nil
// pointer or nil slice means the field was not provided.
type SubjectMetadata struct {
	Sex                 *Field       `json:"sex" yaml:"sex,omitempty"`
	Race                []Field      `json:"race" yaml:"race,omitempty"`
	Ethnicity           *Field       `json:"ethnicity" yaml:"ethnicity,omitempty"`
	Identifiers         []Field      `json:"identifiers" yaml:"identifiers,omitempty"`
	VitalStatus         *Field       `json:"vital_status" yaml:"vital_status,omitempty"`
	AgeAtVitalStatus    *Age         `json:"age_at_vital_status" yaml:"age_at_vital_status,omitempty"`
	AssociatedDiagnoses []Field      `json:"associated_diagnoses" yaml:"associated_diagnoses,omitempty"`
	Depositions         []Deposition `json:"depositions" yaml:"depositions,omitempty"`
	Unharmonized        Unharmonized `json:"unharmonized,omitempty" yaml:"unharmonized,omitempty"`
}

// Subject is a participant, xenograft, cell line or organoid that samples are drawn from.
type Subject struct {
	Identifier Identifier       `json:"id" yaml:"id"`
	Kind       SubjectKind      `json:"kind" yaml:"kind"`
	Metadata   *SubjectMetadata `json:"metadata" yaml:"metadata,omitempty"`
}

// ID returns the subject identifier.
func (s Subject) ID() Identifier { return s.Identifier }
