package store

import (
	"fmt"
	"math/rand/v2"

	"github.com/ccdi-federation/ccdi-catalog/internal/models"
)

// GenerateOptions controls the synthetic catalog built at start-up when no
// seed file is configured.
type GenerateOptions struct {
	Subjects int
	Samples  int
	Files    int
	Seed     uint64
}

// Organization and namespaces that generated entities are spread across.
const exampleOrganization = "example-organization"

var exampleNamespaces = []string{"ExampleNamespaceOne", "ExampleNamespaceTwo"}

var exampleNamespaceDescriptions = []string{
	"The first example namespace owned by Example Organization.",
	"The second example namespace owned by Example Organization.",
}

// Vocabularies drawn from when generating metadata.
var (
	sexes          = []string{"F", "M", "U", "UNDIFFERENTIATED"}
	races          = []string{"American Indian or Alaska Native", "Asian", "Black or African American", "Native Hawaiian or Other Pacific Islander", "Not Allowed to Collect", "Not Reported", "Unknown", "White"}
	ethnicities    = []string{"Hispanic or Latino", "Not Allowed to Collect", "Not Hispanic or Latino", "Not Reported", "Unknown"}
	vitalStatuses  = []string{"Alive", "Dead", "Not Reported", "Unknown", "Unspecified"}
	diagnoses      = []string{"Acute Lymphoblastic Leukemia", "Acute Myeloid Leukemia", "Ewing Sarcoma", "Hepatoblastoma", "Medulloblastoma", "Neuroblastoma", "Osteosarcoma", "Rhabdomyosarcoma", "Wilms Tumor"}
	diseasePhases  = []string{"Initial Diagnosis", "Post-Mortem", "Progression", "Recurrent Disease", "Relapse", "Second Malignancy", "Not Reported", "Unknown"}
	anatomicSites  = []string{"Bone marrow", "Brain", "Kidney", "Liver", "Lung", "Peripheral blood", "Soft tissue"}
	selection      = []string{"Hybrid Selection", "PCR", "Random", "RT-PCR", "Other"}
	strategies     = []string{"AMPLICON", "ATAC-seq", "Bisulfite-Seq", "ChIP-Seq", "RNA-Seq", "WGS", "WXS"}
	sourceMaterial = []string{"Bulk Cells", "Bulk Tissue", "Cell-Free DNA", "Single Cell", "Not Reported"}
	preservation   = []string{"Cryopreserved", "FFPE", "Fresh", "OCT", "Snap Frozen", "Not Reported"}
	analyteTypes   = []string{"DNA", "RNA", "Protein", "Transcriptome"}
	tissueTypes    = []string{"Abnormal", "Normal", "Peritumoral", "Tumor", "Non-neoplastic", "Unknown"}
	tumorClasses   = []string{"Metastatic", "Non-neoplastic", "Primary", "Regional", "Unknown"}
	tumorGrades    = []string{"G1 Low Grade", "G2 Intermediate Grade", "G3 High Grade", "G4 Anaplastic", "GX Grade Cannot Be Assessed"}
	morphologies   = []string{"8000/0", "8000/3", "8010/3", "8140/3", "9470/3", "9500/3"}
	fileTypes      = []string{"BAM", "CRAM", "FASTQ", "TXT", "VCF"}
	descriptions   = []string{"Aligned reads from tumor whole genome sequencing.", "Germline variant calls.", "Raw paired-end reads.", "Somatic variant calls from matched tumor/normal.", "Gene expression quantification."}
)

// Generate builds a random catalog. The same options always produce the same
// catalog. Roughly one entity in ten has no metadata block and individual
// fields are left unset at random, so absent values occur naturally.
func Generate(opts GenerateOptions) Catalog {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	g := generator{rng: rng}

	c := Catalog{
		Organizations: []models.Organization{{Identifier: exampleOrganization, Name: "Example Organization"}},
		Namespaces:    make([]models.Namespace, 0, len(exampleNamespaces)),
		Subjects:      make([]models.Subject, 0, opts.Subjects),
		Samples:       make([]models.Sample, 0, opts.Samples),
		Files:         make([]models.File, 0, opts.Files),
	}
	for i, name := range exampleNamespaces {
		c.Namespaces = append(c.Namespaces, models.Namespace{
			ID:           models.NamespaceID{Organization: exampleOrganization, Name: name},
			ContactEmail: "support@example.com",
			Description:  exampleNamespaceDescriptions[i],
			Metadata:     &models.NamespaceMetadata{StudyShortTitle: models.NewField("A study short title")},
		})
	}
	for i := range opts.Subjects {
		c.Subjects = append(c.Subjects, g.subject(g.identifier("Subject", i+1)))
	}
	for i := range opts.Samples {
		var parent models.Identifier
		if len(c.Subjects) > 0 {
			parent = c.Subjects[g.rng.IntN(len(c.Subjects))].Identifier
		}
		c.Samples = append(c.Samples, g.sample(g.identifier("Sample", i+1), parent))
	}
	for i := range opts.Files {
		var parents []models.Identifier
		if len(c.Samples) > 0 {
			parents = append(parents, c.Samples[g.rng.IntN(len(c.Samples))].Identifier)
		}
		c.Files = append(c.Files, g.file(g.identifier("File", i+1), parents))
	}
	return c
}

type generator struct {
	rng *rand.Rand
}

func (g generator) identifier(prefix string, n int) models.Identifier {
	ns := exampleNamespaces[g.rng.IntN(len(exampleNamespaces))]
	return models.NewIdentifier(exampleOrganization, ns, fmt.Sprintf("%s%d", prefix, n))
}

func (g generator) skipMetadata() bool { return g.rng.IntN(10) == 0 }

func (g generator) pick(vocab []string) *models.Field {
	if g.rng.IntN(8) == 0 {
		return nil
	}
	return models.NewField(vocab[g.rng.IntN(len(vocab))])
}

func (g generator) pickMany(vocab []string) []models.Field {
	if g.rng.IntN(8) == 0 {
		return nil
	}
	n := 1 + g.rng.IntN(2)
	out := make([]models.Field, 0, n)
	for range n {
		out = append(out, models.Field{Value: vocab[g.rng.IntN(len(vocab))]})
	}
	return out
}

func (g generator) age(maxDays int) *models.Age {
	if g.rng.IntN(8) == 0 {
		return nil
	}
	return &models.Age{Value: float64(g.rng.IntN(maxDays*4)) / 4}
}

func (g generator) depositions() []models.Deposition {
	if g.rng.IntN(3) == 0 {
		return nil
	}
	return []models.Deposition{{
		Kind:  models.DepositionDbGaP,
		Value: fmt.Sprintf("phs%06d.v%d.p1", g.rng.IntN(3)+1, g.rng.IntN(2)+1),
	}}
}

func (g generator) subject(id models.Identifier) models.Subject {
	s := models.Subject{
		Identifier: id,
		Kind:       models.ValidSubjectKinds[g.rng.IntN(len(models.ValidSubjectKinds))],
	}
	if g.skipMetadata() {
		return s
	}
	s.Metadata = &models.SubjectMetadata{
		Sex:                 g.pick(sexes),
		Race:                g.pickMany(races),
		Ethnicity:           g.pick(ethnicities),
		Identifiers:         []models.Field{{Value: id.String()}},
		VitalStatus:         g.pick(vitalStatuses),
		AgeAtVitalStatus:    g.age(365 * 25),
		AssociatedDiagnoses: g.pickMany(diagnoses),
		Depositions:         g.depositions(),
	}
	return s
}

func (g generator) sample(id, subject models.Identifier) models.Sample {
	s := models.Sample{Identifier: id, Subject: subject}
	if g.skipMetadata() {
		return s
	}
	s.Metadata = &models.SampleMetadata{
		AgeAtDiagnosis:               g.age(365 * 20),
		AgeAtCollection:              g.age(365 * 20),
		AnatomicalSites:              g.pickMany(anatomicSites),
		Diagnosis:                    g.pick(diagnoses),
		DiseasePhase:                 g.pick(diseasePhases),
		LibrarySelectionMethod:       g.pick(selection),
		LibraryStrategy:              g.pick(strategies),
		LibrarySourceMaterial:        g.pick(sourceMaterial),
		PreservationMethod:           g.pick(preservation),
		SpecimenMolecularAnalyteType: g.pick(analyteTypes),
		TissueType:                   g.pick(tissueTypes),
		TumorClassification:          g.pick(tumorClasses),
		TumorGrade:                   g.pick(tumorGrades),
		TumorTissueMorphology:        g.pick(morphologies),
		Depositions:                  g.depositions(),
	}
	return s
}

func (g generator) file(id models.Identifier, samples []models.Identifier) models.File {
	f := models.File{Identifier: id, Samples: samples}
	if g.skipMetadata() {
		return f
	}
	size := int64(g.rng.IntN(1 << 30))
	desc := descriptions[g.rng.IntN(len(descriptions))]
	f.Metadata = &models.FileMetadata{
		Type:        g.pick(fileTypes),
		Size:        &size,
		Checksums:   &models.Checksums{MD5: fmt.Sprintf("%032x", g.rng.Uint64())},
		Description: &desc,
		Depositions: g.depositions(),
	}
	return f
}
