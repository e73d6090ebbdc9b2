package filter

import (
	"strconv"

	"github.com/ccdi-federation/ccdi-catalog/internal/models"
)

// Registries for the entity endpoints. The diagnosis variants add a "search"
// field that matches diagnoses case-insensitively by substring.
var (
	Subjects         = MustRegistry("subject", subjectFields()...)
	SubjectDiagnoses = MustRegistry("subject", append([]Field[models.Subject]{{
		Name:        "search",
		Cardinality: Multiple,
		Mode:        MatchSearch,
		Extract:     subject(func(m *models.SubjectMetadata) ([]string, bool) { return many(m.AssociatedDiagnoses) }),
	}}, subjectFields()...)...)

	Samples         = MustRegistry("sample", sampleFields()...)
	SampleDiagnoses = MustRegistry("sample", append([]Field[models.Sample]{{
		Name:        "search",
		Cardinality: Single,
		Mode:        MatchSearch,
		Extract:     sample(func(m *models.SampleMetadata) ([]string, bool) { return one(m.Diagnosis) }),
	}}, sampleFields()...)...)

	Files = MustRegistry("file", fileFields()...)
)

func subjectFields() []Field[models.Subject] {
	return []Field[models.Subject]{
		exactSubject("sex", Single, func(m *models.SubjectMetadata) ([]string, bool) { return one(m.Sex) }),
		exactSubject("race", Multiple, func(m *models.SubjectMetadata) ([]string, bool) { return many(m.Race) }),
		exactSubject("ethnicity", Single, func(m *models.SubjectMetadata) ([]string, bool) { return one(m.Ethnicity) }),
		exactSubject("identifiers", Multiple, func(m *models.SubjectMetadata) ([]string, bool) { return many(m.Identifiers) }),
		exactSubject("vital_status", Single, func(m *models.SubjectMetadata) ([]string, bool) { return one(m.VitalStatus) }),
		exactSubject("age_at_vital_status", Single, func(m *models.SubjectMetadata) ([]string, bool) { return age(m.AgeAtVitalStatus) }),
		exactSubject("depositions", Multiple, func(m *models.SubjectMetadata) ([]string, bool) { return depositions(m.Depositions) }),
	}
}

func sampleFields() []Field[models.Sample] {
	return []Field[models.Sample]{
		exactSample("disease_phase", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.DiseasePhase) }),
		exactSample("anatomical_sites", Multiple, func(m *models.SampleMetadata) ([]string, bool) { return many(m.AnatomicalSites) }),
		exactSample("library_selection_method", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.LibrarySelectionMethod) }),
		exactSample("library_strategy", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.LibraryStrategy) }),
		exactSample("library_source_material", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.LibrarySourceMaterial) }),
		exactSample("preservation_method", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.PreservationMethod) }),
		exactSample("tumor_grade", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.TumorGrade) }),
		exactSample("specimen_molecular_analyte_type", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.SpecimenMolecularAnalyteType) }),
		exactSample("tissue_type", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.TissueType) }),
		exactSample("tumor_classification", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.TumorClassification) }),
		exactSample("age_at_diagnosis", Single, func(m *models.SampleMetadata) ([]string, bool) { return age(m.AgeAtDiagnosis) }),
		exactSample("age_at_collection", Single, func(m *models.SampleMetadata) ([]string, bool) { return age(m.AgeAtCollection) }),
		exactSample("tumor_tissue_morphology", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.TumorTissueMorphology) }),
		exactSample("depositions", Multiple, func(m *models.SampleMetadata) ([]string, bool) { return depositions(m.Depositions) }),
		exactSample("diagnosis", Single, func(m *models.SampleMetadata) ([]string, bool) { return one(m.Diagnosis) }),
	}
}

func fileFields() []Field[models.File] {
	return []Field[models.File]{
		{Name: "type", Cardinality: Single, Mode: MatchExact, Extract: file(func(m *models.FileMetadata) ([]string, bool) {
			return one(m.Type)
		})},
		{Name: "size", Cardinality: Single, Mode: MatchExact, Extract: file(func(m *models.FileMetadata) ([]string, bool) {
			if m.Size == nil {
				return nil, false
			}
			return []string{strconv.FormatInt(*m.Size, 10)}, true
		})},
		{Name: "checksums", Cardinality: Multiple, Mode: MatchExact, Extract: file(func(m *models.FileMetadata) ([]string, bool) {
			if m.Checksums == nil {
				return nil, false
			}
			values := m.Checksums.Values()
			return values, len(values) > 0
		})},
		{Name: "description", Cardinality: Single, Mode: MatchContains, Extract: file(func(m *models.FileMetadata) ([]string, bool) {
			if m.Description == nil {
				return nil, false
			}
			return []string{*m.Description}, true
		})},
		{Name: "depositions", Cardinality: Multiple, Mode: MatchExact, Extract: file(func(m *models.FileMetadata) ([]string, bool) {
			return depositions(m.Depositions)
		})},
	}
}

func exactSubject(name string, c Cardinality, get func(*models.SubjectMetadata) ([]string, bool)) Field[models.Subject] {
	return Field[models.Subject]{Name: name, Cardinality: c, Mode: MatchExact, Extract: subject(get)}
}

func exactSample(name string, c Cardinality, get func(*models.SampleMetadata) ([]string, bool)) Field[models.Sample] {
	return Field[models.Sample]{Name: name, Cardinality: c, Mode: MatchExact, Extract: sample(get)}
}

// subject, sample and file lift a metadata accessor into an extractor that
// treats a missing metadata block as an absent field.

func subject(get func(*models.SubjectMetadata) ([]string, bool)) Extractor[models.Subject] {
	return func(s models.Subject) ([]string, bool) {
		if s.Metadata == nil {
			return nil, false
		}
		return get(s.Metadata)
	}
}

func sample(get func(*models.SampleMetadata) ([]string, bool)) Extractor[models.Sample] {
	return func(s models.Sample) ([]string, bool) {
		if s.Metadata == nil {
			return nil, false
		}
		return get(s.Metadata)
	}
}

func file(get func(*models.FileMetadata) ([]string, bool)) Extractor[models.File] {
	return func(f models.File) ([]string, bool) {
		if f.Metadata == nil {
			return nil, false
		}
		return get(f.Metadata)
	}
}

func one(f *models.Field) ([]string, bool) {
	if f == nil {
		return nil, false
	}
	return []string{f.Value}, true
}

func many(fields []models.Field) ([]string, bool) {
	if len(fields) == 0 {
		return nil, false
	}
	out := make([]string, len(fields))
	for i := range fields {
		out[i] = fields[i].Value
	}
	return out, true
}

func age(a *models.Age) ([]string, bool) {
	if a == nil {
		return nil, false
	}
	return []string{a.String()}, true
}

func depositions(deps []models.Deposition) ([]string, bool) {
	if len(deps) == 0 {
		return nil, false
	}
	out := make([]string, len(deps))
	for i := range deps {
		out[i] = deps[i].Value
	}
	return out, true
}
