package report

import (
	"github.com/temirov/gitinfo/internal/repoinfo"
)

// InspectionDocument is the serialized form of one inspected directory.
type InspectionDocument struct {
	Directory  string              `json:"directory" yaml:"directory"`
	Status     string              `json:"status" yaml:"status"`
	Repository *RepositoryDocument `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// RepositoryDocument describes the repository enclosing an inspected directory.
// Branch and Remotes encode as null when absent.
type RepositoryDocument struct {
	Root                string          `json:"root" yaml:"root"`
	Name                string          `json:"name" yaml:"name"`
	ParentDirectoryName string          `json:"parent_directory_name" yaml:"parent_directory_name"`
	Branch              *string         `json:"branch" yaml:"branch"`
	Remotes             RemoteEndpoints `json:"remotes" yaml:"remotes"`
}

// RemoteEndpoints maps remote names to URLs.
type RemoteEndpoints map[string]string

// MarshalYAML encodes a nil mapping as null rather than an empty mapping.
func (endpoints RemoteEndpoints) MarshalYAML() (any, error) {
	if endpoints == nil {
		return nil, nil
	}
	return map[string]string(endpoints), nil
}

// NewInspectionDocument converts an inspection into its serialized form.
func NewInspectionDocument(inspection repoinfo.Inspection) InspectionDocument {
	document := InspectionDocument{
		Directory: inspection.Directory,
		Status:    string(inspection.Status),
	}

	repository, isRepository := inspection.Repository()
	if !isRepository {
		return document
	}

	repositoryDocument := &RepositoryDocument{
		Root:                repository.Root,
		Name:                repository.Name,
		ParentDirectoryName: repository.ParentDirectoryName,
		Remotes:             RemoteEndpoints(repository.Remotes.Endpoints()),
	}
	if branchName, hasBranch := repository.Branch.Name(); hasBranch {
		repositoryDocument.Branch = &branchName
	}
	document.Repository = repositoryDocument
	return document
}

// NewInspectionDocuments converts inspections preserving their order.
func NewInspectionDocuments(inspections []repoinfo.Inspection) []InspectionDocument {
	documents := make([]InspectionDocument, 0, len(inspections))
	for _, inspection := range inspections {
		documents = append(documents, NewInspectionDocument(inspection))
	}
	return documents
}
