package xcode

import (
	"maps"
	"sync"

	"github.com/danderson/xcresult"
)

var shapes = map[xcresult.TypeName]any{
	"ActionAbstractTestSummary":           ActionAbstractTestSummary{},
	"ActionDeviceRecord":                  ActionDeviceRecord{},
	"ActionPlatformRecord":                ActionPlatformRecord{},
	"ActionRecord":                        ActionRecord{},
	"ActionResult":                        ActionResult{},
	"ActionRunDestinationRecord":          ActionRunDestinationRecord{},
	"ActionSDKRecord":                     ActionSDKRecord{},
	"ActionTestActivitySummary":           ActionTestActivitySummary{},
	"ActionTestAttachment":                ActionTestAttachment{},
	"ActionTestFailureSummary":            ActionTestFailureSummary{},
	"ActionTestMetadata":                  ActionTestMetadata{},
	"ActionTestPerformanceMetricSummary":  ActionTestPerformanceMetricSummary{},
	"ActionTestPlanRunSummaries":          ActionTestPlanRunSummaries{},
	"ActionTestPlanRunSummary":            ActionTestPlanRunSummary{},
	"ActionTestSummary":                   ActionTestSummary{},
	"ActionTestSummaryGroup":              ActionTestSummaryGroup{},
	"ActionTestSummaryIdentifiableObject": ActionTestSummaryIdentifiableObject{},
	"ActionTestableSummary":               ActionTestableSummary{},
	"ActionsInvocationMetadata":           ActionsInvocationMetadata{},
	"ActionsInvocationRecord":             ActionsInvocationRecord{},
	"ActivityLogCommandInvocationSection": ActivityLogCommandInvocationSection{},
	"ActivityLogMajorSection":             ActivityLogMajorSection{},
	"ActivityLogMessage":                  ActivityLogMessage{},
	"ActivityLogMessageAnnotation":        ActivityLogMessageAnnotation{},
	"ActivityLogSection":                  ActivityLogSection{},
	"ActivityLogTargetBuildSection":       ActivityLogTargetBuildSection{},
	"ActivityLogUnitTestSection":          ActivityLogUnitTestSection{},
	"ArchiveInfo":                         ArchiveInfo{},
	"CodeCoverageInfo":                    CodeCoverageInfo{},
	"DocumentLocation":                    DocumentLocation{},
	"EntityIdentifier":                    EntityIdentifier{},
	"IssueSummary":                        IssueSummary{},
	"ObjectID":                            ObjectID{},
	"Reference":                           Reference{},
	"ResultIssueSummaries":                ResultIssueSummaries{},
	"ResultMetrics":                       ResultMetrics{},
	"TestFailureIssueSummary":             TestFailureIssueSummary{},
	"TypeDefinition":                      TypeDefinition{},
}

// Shapes returns the type names of the xcresult object model, and an
// example value of the shape each decodes into. The returned map is a
// copy, and can be extended before passing it to
// [xcresult.NewFamily].
func Shapes() map[xcresult.TypeName]any {
	return maps.Clone(shapes)
}

// NewFamily returns a new family for the xcresult object model,
// configured by opts.
func NewFamily(opts *xcresult.FamilyOptions) (*xcresult.Family, error) {
	return xcresult.NewFamily("xcresult", shapes, opts)
}

// Family returns the shared family for the xcresult object model. It
// logs nothing.
var Family = sync.OnceValue(func() *xcresult.Family {
	return xcresult.MustFamily("xcresult", shapes, nil)
})
