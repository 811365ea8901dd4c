package repoinfo

import (
	"errors"
	"regexp"
	"strings"

	"github.com/temirov/gitinfo/internal/execshell"
)

const (
	outputLineSeparatorConstant       = "\n"
	currentBranchMarkerConstant       = '*'
	currentBranchPrefixLengthConstant = 2
	remoteFieldSeparatorConstant      = "\t"
	remoteAnnotationSeparatorConstant = " "
	notRepositoryPatternConstant      = `(?i)not a git repository`
)

var notRepositoryPattern = regexp.MustCompile(notRepositoryPatternConstant)

// ParseCurrentBranch extracts the checked-out branch from `git branch` output.
// The current branch is the line starting with '*'; the marker and the single character after it are dropped.
func ParseCurrentBranch(output string) Branch {
	for _, line := range strings.Split(output, outputLineSeparatorConstant) {
		if len(line) == 0 || line[0] != currentBranchMarkerConstant {
			continue
		}
		if len(line) < currentBranchPrefixLengthConstant {
			return CheckedOutBranch("")
		}
		return CheckedOutBranch(line[currentBranchPrefixLengthConstant:])
	}
	return NoBranch()
}

// ParseRemotes extracts remote names and URLs from `git remote --verbose` output.
// Each line reads "<name>\t<url> (<direction>)"; later lines for a name replace earlier ones.
// Lines lacking a tab are returned as skipped so callers can report them.
func ParseRemotes(output string) (Remotes, []string) {
	endpoints := make(map[string]string)
	var skippedLines []string

	for _, line := range strings.Split(strings.TrimSpace(output), outputLineSeparatorConstant) {
		if len(line) == 0 {
			continue
		}
		remoteName, remainder, hasSeparator := strings.Cut(line, remoteFieldSeparatorConstant)
		if !hasSeparator {
			skippedLines = append(skippedLines, line)
			continue
		}
		endpoints[remoteName] = stripDirectionAnnotation(remainder)
	}

	return ConfiguredRemotes(endpoints), skippedLines
}

func stripDirectionAnnotation(remainder string) string {
	annotationIndex := strings.LastIndex(remainder, remoteAnnotationSeparatorConstant)
	if annotationIndex < 0 {
		return remainder
	}
	return remainder[:annotationIndex]
}

// IsNotRepositoryFailure reports whether a failure carries git's "not a git repository" message.
// Command failures are matched on git's standard error only, so the working directory named in the
// command label never triggers a match. Commands that could not start never match.
func IsNotRepositoryFailure(failure error) bool {
	if failure == nil {
		return false
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(failure, &commandFailure) {
		return notRepositoryPattern.MatchString(commandFailure.Result.StandardError)
	}

	var executionFailure execshell.CommandExecutionError
	if errors.As(failure, &executionFailure) {
		return false
	}

	return notRepositoryPattern.MatchString(failure.Error())
}
