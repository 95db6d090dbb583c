package giterror

import "strings"

// Kind is the failure category of an upstream GitHub API error.
type Kind int

const (
	// KindNone means no error or an error that fits no known category.
	KindNone Kind = iota
	// KindAuth covers authentication and authorization failures.
	KindAuth
	// KindNotFound covers missing or inaccessible repositories.
	KindNotFound
	// KindRateLimit covers API rate limit rejections.
	KindRateLimit
	// KindNetwork covers transport-level connectivity failures.
	KindNetwork
)

// Inspector classifies GitHub API errors into failure categories.
type Inspector interface {
	// Classify reports which failure category err belongs to.
	// Returns KindNone for nil or unrecognized errors.
	Classify(err error) Kind
}

// GitHubErrorInspector implements Inspector for GitHub API errors.
// GitHub's GraphQL endpoint reports most failures as message strings rather
// than typed errors, so classification is substring-based.
type GitHubErrorInspector struct{}

// NewInspector creates a new GitHubErrorInspector.
func NewInspector() Inspector {
	return &GitHubErrorInspector{}
}

// Classify inspects the error message and returns its failure category.
// Rate limits are checked before auth because GitHub reports both as 403.
func (i *GitHubErrorInspector) Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	msg := strings.ToLower(err.Error())

	switch {
	case isRateLimit(msg):
		return KindRateLimit
	case isAuth(msg):
		return KindAuth
	case isNotFound(msg):
		return KindNotFound
	case isNetwork(msg):
		return KindNetwork
	default:
		return KindNone
	}
}

func isRateLimit(msg string) bool {
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "api rate limit exceeded")
}

func isAuth(msg string) bool {
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "bad credentials") ||
		strings.Contains(msg, "authentication")
}

func isNotFound(msg string) bool {
	return strings.Contains(msg, "404") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "could not resolve to a repository")
}

func isNetwork(msg string) bool {
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "temporary failure") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "tls handshake") ||
		strings.Contains(msg, "network is unreachable")
}
