package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitinfo/internal/gitrepo"
	"github.com/temirov/gitinfo/internal/repoinfo"
)

const (
	jsonIndentPrefixConstant = ""
	jsonIndentValueConstant  = "  "
	yamlIndentSpacesConstant = 2
	noneLabelConstant        = "(none)"
	emptyCellConstant        = ""
)

var textReportHeaders = []string{"Directory", "Status", "Root", "Name", "Parent", "Branch", "Remote", "URL", "Protocol"}

// Renderer writes inspections to an output stream.
type Renderer interface {
	Render(writer io.Writer, inspections []repoinfo.Inspection) error
}

// RendererOption customizes renderer construction.
type RendererOption func(*rendererSettings)

type rendererSettings struct {
	colorEnabled bool
}

// WithColor toggles ANSI colors in the text format.
func WithColor(enabled bool) RendererOption {
	return func(settings *rendererSettings) {
		settings.colorEnabled = enabled
	}
}

// NewRenderer returns the renderer for the requested format.
func NewRenderer(format Format, options ...RendererOption) (Renderer, error) {
	settings := rendererSettings{colorEnabled: !color.NoColor}
	for _, option := range options {
		if option != nil {
			option(&settings)
		}
	}

	switch format {
	case FormatJSON, "":
		return jsonRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	case FormatText:
		return newTextRenderer(settings.colorEnabled), nil
	default:
		return nil, fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, format)
	}
}

// documentPayload yields a single document for one inspection and a list otherwise.
func documentPayload(inspections []repoinfo.Inspection) any {
	documents := NewInspectionDocuments(inspections)
	if len(documents) == 1 {
		return documents[0]
	}
	return documents
}

type jsonRenderer struct{}

func (jsonRenderer) Render(writer io.Writer, inspections []repoinfo.Inspection) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent(jsonIndentPrefixConstant, jsonIndentValueConstant)
	return encoder.Encode(documentPayload(inspections))
}

type yamlRenderer struct{}

func (yamlRenderer) Render(writer io.Writer, inspections []repoinfo.Inspection) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentSpacesConstant)
	if encodeError := encoder.Encode(documentPayload(inspections)); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

type textRenderer struct {
	repositoryLabel    func(a ...any) string
	notRepositoryLabel func(a ...any) string
	noneLabel          func(a ...any) string
}

func newTextRenderer(colorEnabled bool) textRenderer {
	repositoryColor := color.New(color.FgGreen)
	notRepositoryColor := color.New(color.FgYellow)
	noneColor := color.New(color.FgHiBlack)
	for _, labelColor := range []*color.Color{repositoryColor, notRepositoryColor, noneColor} {
		if colorEnabled {
			labelColor.EnableColor()
		} else {
			labelColor.DisableColor()
		}
	}
	return textRenderer{
		repositoryLabel:    repositoryColor.SprintFunc(),
		notRepositoryLabel: notRepositoryColor.SprintFunc(),
		noneLabel:          noneColor.SprintFunc(),
	}
}

func (renderer textRenderer) Render(writer io.Writer, inspections []repoinfo.Inspection) error {
	table := tablewriter.NewWriter(writer)
	table.Header(textReportHeaders)
	table.Configure(func(configuration *tablewriter.Config) {
		configuration.Row.Alignment.Global = tw.AlignLeft
	})

	var rows [][]string
	for _, inspection := range inspections {
		rows = append(rows, renderer.rows(inspection)...)
	}

	if bulkError := table.Bulk(rows); bulkError != nil {
		return bulkError
	}
	return table.Render()
}

func (renderer textRenderer) rows(inspection repoinfo.Inspection) [][]string {
	repository, isRepository := inspection.Repository()
	if !isRepository {
		return [][]string{{
			inspection.Directory,
			renderer.notRepositoryLabel(string(inspection.Status)),
			emptyCellConstant, emptyCellConstant, emptyCellConstant, emptyCellConstant,
			emptyCellConstant, emptyCellConstant, emptyCellConstant,
		}}
	}

	branchCell := renderer.noneLabel(noneLabelConstant)
	if branchName, hasBranch := repository.Branch.Name(); hasBranch {
		branchCell = branchName
	}

	leadingCells := []string{
		inspection.Directory,
		renderer.repositoryLabel(string(inspection.Status)),
		repository.Root,
		repository.Name,
		repository.ParentDirectoryName,
		branchCell,
	}

	if repository.Remotes.IsNone() {
		noneCell := renderer.noneLabel(noneLabelConstant)
		return [][]string{append(leadingCells, noneCell, emptyCellConstant, emptyCellConstant)}
	}

	var rows [][]string
	for remoteIndex, remoteName := range repository.Remotes.Names() {
		remoteURL, _ := repository.Remotes.URL(remoteName)
		rowLeading := leadingCells
		if remoteIndex > 0 {
			rowLeading = make([]string, len(leadingCells))
		}
		row := append(append([]string{}, rowLeading...), remoteName, remoteURL, string(gitrepo.DetectRemoteProtocol(remoteURL)))
		rows = append(rows, row)
	}
	return rows
}
