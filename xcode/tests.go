package xcode

import (
	"iter"
	"time"

	"github.com/danderson/xcresult"
)

// AbstractTestSummary is implemented by ActionAbstractTestSummary and
// all its subtypes.
type AbstractTestSummary interface {
	AbstractSummary() *ActionAbstractTestSummary
}

// IdentifiableTestSummary is implemented by
// ActionTestSummaryIdentifiableObject and all its subtypes: test
// groups, test metadata and full test summaries.
type IdentifiableTestSummary interface {
	AbstractTestSummary
	IdentifiableSummary() *ActionTestSummaryIdentifiableObject
}

// ActionAbstractTestSummary is the base of every test summary.
type ActionAbstractTestSummary struct {
	Name *string
}

func (s *ActionAbstractTestSummary) AbstractSummary() *ActionAbstractTestSummary { return s }

// ActionTestSummaryIdentifiableObject is a test summary with an
// identifier, such as a group or a test case.
type ActionTestSummaryIdentifiableObject struct {
	ActionAbstractTestSummary
	Identifier *string
}

func (s *ActionTestSummaryIdentifiableObject) IdentifiableSummary() *ActionTestSummaryIdentifiableObject {
	return s
}

// ActionTestSummaryGroup is a test suite, or any other grouping of
// tests.
type ActionTestSummaryGroup struct {
	ActionTestSummaryIdentifiableObject
	Duration float64
	Subtests []IdentifiableTestSummary
}

// ActionTestMetadata is the summary of one test case, as listed in a
// test plan run. The full ActionTestSummary is fetched through
// SummaryRef.
type ActionTestMetadata struct {
	ActionTestSummaryIdentifiableObject
	TestStatus              string
	Duration                *float64
	SummaryRef              *Reference
	PerformanceMetricsCount *int
	FailureSummariesCount   *int
	ActivitySummariesCount  *int
}

// ActionTestSummary is the full record of one test case.
type ActionTestSummary struct {
	ActionTestSummaryIdentifiableObject
	TestStatus         string
	Duration           float64
	PerformanceMetrics []*ActionTestPerformanceMetricSummary
	FailureSummaries   []*ActionTestFailureSummary
	ActivitySummaries  []*ActionTestActivitySummary
}

// ActionTestableSummary is the result of one test target.
type ActionTestableSummary struct {
	ActionAbstractTestSummary
	ProjectRelativePath      *string
	TargetName               *string
	TestKind                 *string
	Tests                    []IdentifiableTestSummary
	DiagnosticsDirectoryName *string
	FailureSummaries         []*ActionTestFailureSummary
	TestLanguage             *string
	TestRegion               *string
}

// ActionTestPlanRunSummary is the result of one test plan
// configuration.
type ActionTestPlanRunSummary struct {
	ActionAbstractTestSummary
	TestableSummaries []*ActionTestableSummary
}

// ActionTestPlanRunSummaries is the object behind an ActionResult's
// TestsRef.
type ActionTestPlanRunSummaries struct {
	Summaries []*ActionTestPlanRunSummary
}

// Tests returns an iterator over every test case in s, descending
// through groups. Test cases are yielded in document order.
func (s *ActionTestPlanRunSummaries) Tests() iter.Seq[*ActionTestMetadata] {
	return func(yield func(*ActionTestMetadata) bool) {
		for _, run := range s.Summaries {
			for _, testable := range run.TestableSummaries {
				if !yieldTests(testable.Tests, yield) {
					return
				}
			}
		}
	}
}

func yieldTests(tests []IdentifiableTestSummary, yield func(*ActionTestMetadata) bool) bool {
	for _, t := range tests {
		switch x := t.(type) {
		case *ActionTestMetadata:
			if !yield(x) {
				return false
			}
		case *ActionTestSummaryGroup:
			if !yieldTests(x.Subtests, yield) {
				return false
			}
		}
	}
	return true
}

// ActionTestActivitySummary is one step of a test's activity log.
type ActionTestActivitySummary struct {
	Title             string
	ActivityType      string
	UUID              string
	Start             *time.Time
	Finish            *time.Time
	Attachments       []*ActionTestAttachment
	Subactivities     []*ActionTestActivitySummary
	FailureSummaryIDs []string
}

// Walk returns an iterator over a and all its subactivities, in
// depth-first order.
func (a *ActionTestActivitySummary) Walk() iter.Seq[*ActionTestActivitySummary] {
	return func(yield func(*ActionTestActivitySummary) bool) {
		a.walk(yield)
	}
}

func (a *ActionTestActivitySummary) walk(yield func(*ActionTestActivitySummary) bool) bool {
	if !yield(a) {
		return false
	}
	for _, sub := range a.Subactivities {
		if !sub.walk(yield) {
			return false
		}
	}
	return true
}

// ActionTestFailureSummary describes one failure of a test.
type ActionTestFailureSummary struct {
	Message              *string
	FileName             string
	LineNumber           int
	IsPerformanceFailure bool
	UUID                 *string
	IssueType            *string
	DetailedDescription  *string
	Attachments          []*ActionTestAttachment
	Timestamp            *time.Time
	IsTopLevelFailure    *bool
}

// ActionTestAttachment is a file attached to a test activity, such as
// a screenshot. The payload itself is fetched through PayloadRef.
type ActionTestAttachment struct {
	UniformTypeIdentifier string
	Name                  *string
	UUID                  *string
	Timestamp             *time.Time
	UserInfo              *xcresult.Opaque
	Lifetime              string
	InActivityIdentifier  int
	Filename              *string
	PayloadRef            *Reference
	PayloadSize           int
}

// ActionTestPerformanceMetricSummary is one performance metric
// measured by a test.
type ActionTestPerformanceMetricSummary struct {
	DisplayName                         string
	UnitOfMeasurement                   string
	Measurements                        []float64
	Identifier                          *string
	BaselineName                        *string
	BaselineAverage                     *float64
	MaxPercentRegression                *float64
	MaxPercentRelativeStandardDeviation *float64
	MaxRegression                       *float64
	MaxStandardDeviation                *float64
	Polarity                            *string
}
