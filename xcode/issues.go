package xcode

// Issue is implemented by IssueSummary and its subtypes.
type Issue interface {
	Summary() *IssueSummary
}

// IssueSummary is an error, warning or test failure reported by an
// action.
type IssueSummary struct {
	IssueType                           string
	Message                             string
	ProducingTarget                     *string
	DocumentLocationInCreatingWorkspace *DocumentLocation
}

func (s *IssueSummary) Summary() *IssueSummary { return s }

// TestFailureIssueSummary is an IssueSummary for a failed test.
type TestFailureIssueSummary struct {
	IssueSummary
	TestCaseName string
}

// ResultIssueSummaries groups the issues of an invocation or action
// by kind.
type ResultIssueSummaries struct {
	AnalyzerWarningSummaries []Issue
	ErrorSummaries           []Issue
	TestFailureSummaries     []*TestFailureIssueSummary
	WarningSummaries         []Issue
}
