package gitrepo

import (
	"strings"
)

const (
	schemeSeparatorConstant     = "://"
	scpUserDelimiterConstant    = "@"
	scpPathDelimiterConstant    = ":"
	pathSeparatorConstant       = "/"
	relativePathPrefixConstant  = "./"
	parentPathPrefixConstant    = "../"
	windowsVolumeSuffixConstant = ":\\"
	sshSchemeAliasConstant      = "git+ssh"
	sshSchemeReversedConstant   = "ssh+git"
)

// RemoteProtocol classifies the transport a remote URL uses.
type RemoteProtocol string

// Recognized remote protocols.
const (
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
	RemoteProtocolHTTP  RemoteProtocol = RemoteProtocol("http")
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolGit   RemoteProtocol = RemoteProtocol("git")
	RemoteProtocolFile  RemoteProtocol = RemoteProtocol("file")
	RemoteProtocolOther RemoteProtocol = RemoteProtocol("other")
)

var schemeProtocols = map[string]RemoteProtocol{
	string(RemoteProtocolHTTPS): RemoteProtocolHTTPS,
	string(RemoteProtocolHTTP):  RemoteProtocolHTTP,
	string(RemoteProtocolSSH):   RemoteProtocolSSH,
	sshSchemeAliasConstant:      RemoteProtocolSSH,
	sshSchemeReversedConstant:   RemoteProtocolSSH,
	string(RemoteProtocolGit):   RemoteProtocolGit,
	string(RemoteProtocolFile):  RemoteProtocolFile,
}

// DetectRemoteProtocol classifies a remote URL by its scheme or, for scheme-less values,
// by the scp-like "user@host:path" shape or a local path. The URL itself is never rewritten.
func DetectRemoteProtocol(remoteURL string) RemoteProtocol {
	trimmed := strings.TrimSpace(remoteURL)
	if len(trimmed) == 0 {
		return RemoteProtocolOther
	}

	if scheme, _, hasScheme := strings.Cut(trimmed, schemeSeparatorConstant); hasScheme {
		if protocol, known := schemeProtocols[strings.ToLower(scheme)]; known {
			return protocol
		}
		return RemoteProtocolOther
	}

	if isLocalPath(trimmed) {
		return RemoteProtocolFile
	}

	if isScpLikeAddress(trimmed) {
		return RemoteProtocolSSH
	}

	return RemoteProtocolOther
}

func isLocalPath(candidate string) bool {
	if strings.HasPrefix(candidate, pathSeparatorConstant) ||
		strings.HasPrefix(candidate, relativePathPrefixConstant) ||
		strings.HasPrefix(candidate, parentPathPrefixConstant) {
		return true
	}
	return len(candidate) > 2 && candidate[1:3] == windowsVolumeSuffixConstant
}

func isScpLikeAddress(candidate string) bool {
	colonIndex := strings.Index(candidate, scpPathDelimiterConstant)
	if colonIndex <= 0 {
		return false
	}
	slashIndex := strings.Index(candidate, pathSeparatorConstant)
	if slashIndex >= 0 && slashIndex < colonIndex {
		return false
	}
	hostPart := candidate[:colonIndex]
	if atIndex := strings.LastIndex(hostPart, scpUserDelimiterConstant); atIndex >= 0 {
		hostPart = hostPart[atIndex+1:]
	}
	return len(hostPart) > 0 && !strings.ContainsAny(hostPart, " \t")
}
