package api

import "time"

// Version is the version reported by /info for the server, the API and the
// data it serves.
const Version = "v1.0.0"

// Information is the body of GET /info.
type Information struct {
	Server ServerInformation `json:"server"`
	API    APIInformation    `json:"api"`
	Data   DataInformation   `json:"data"`
}

// ServerInformation describes who runs the server.
type ServerInformation struct {
	Name          string `json:"name,omitempty"`
	Version       string `json:"version,omitempty"`
	Owner         string `json:"owner"`
	ContactEmail  string `json:"contact_email"`
	AboutURL      string `json:"about_url,omitempty"`
	RepositoryURL string `json:"repository_url,omitempty"`
	IssuesURL     string `json:"issues_url,omitempty"`
}

// APIInformation describes the API version implemented.
type APIInformation struct {
	APIVersion       string `json:"api_version"`
	DocumentationURL string `json:"documentation_url"`
}

// DataInformation describes the catalog contents.
type DataInformation struct {
	Version          DataVersion `json:"version"`
	LastUpdated      time.Time   `json:"last_updated"`
	WikiURL          string      `json:"wiki_url"`
	DocumentationURL string      `json:"documentation_url,omitempty"`
}

// DataVersion is the version of the served data.
type DataVersion struct {
	Version string `json:"version"`
	About   string `json:"about,omitempty"`
}

// DefaultInformation returns the information reported when none is configured.
// LastUpdated is left for the caller.
func DefaultInformation() Information {
	return Information{
		Server: ServerInformation{
			Name:          "ccdi-catalog",
			Version:       Version,
			Owner:         "Childhood Cancer Data Initiative (CCDI) API Federation Working Group",
			ContactEmail:  "NCIChildhoodCancerDataInitiative@mail.nih.gov",
			AboutURL:      "https://www.cancer.gov/research/areas/childhood/childhood-cancer-data-initiative",
			RepositoryURL: "https://github.com/CBIIT/ccdi-federation-api",
			IssuesURL:     "https://github.com/CBIIT/ccdi-federation-api/issues",
		},
		API: APIInformation{
			APIVersion:       Version,
			DocumentationURL: "https://cbiit.github.io/ccdi-federation-api/",
		},
		Data: DataInformation{
			Version: DataVersion{
				Version: Version,
				About:   "Data within this server is synthetic and versioned together with the server.",
			},
			WikiURL:          "https://github.com/CBIIT/ccdi-federation-api/wiki",
			DocumentationURL: "https://github.com/CBIIT/ccdi-federation-api#development-process",
		},
	}
}
