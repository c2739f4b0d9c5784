package xcode

import (
	"iter"
	"time"
)

// LogSection is implemented by ActivityLogSection and its subtypes.
type LogSection interface {
	Section() *ActivityLogSection
}

// ActivityLogSection is one section of a build or test log. Sections
// nest, mirroring the tree shown in Xcode's report navigator.
type ActivityLogSection struct {
	DomainType  string
	Title       string
	StartTime   *time.Time
	Duration    float64
	Result      *string
	Location    *DocumentLocation
	Subsections []LogSection
	Messages    []*ActivityLogMessage
}

func (s *ActivityLogSection) Section() *ActivityLogSection { return s }

// Walk returns an iterator over s and all its subsections, in
// depth-first order.
func (s *ActivityLogSection) Walk() iter.Seq[LogSection] {
	return func(yield func(LogSection) bool) {
		walkSections(s, yield)
	}
}

func walkSections(s LogSection, yield func(LogSection) bool) bool {
	if !yield(s) {
		return false
	}
	for _, sub := range s.Section().Subsections {
		if !walkSections(sub, yield) {
			return false
		}
	}
	return true
}

// ActivityLogMajorSection is a top-level section of a build log.
type ActivityLogMajorSection struct {
	ActivityLogSection
	Subtitle string
}

// ActivityLogTargetBuildSection is the log of building one target.
type ActivityLogTargetBuildSection struct {
	ActivityLogMajorSection
	ProductType *string
}

// ActivityLogCommandInvocationSection is the log of one command run
// during a build, such as a compiler invocation.
type ActivityLogCommandInvocationSection struct {
	ActivityLogSection
	CommandDetails string
	EmittedOutput  string
	ExitCode       *int
}

// ActivityLogUnitTestSection is the log of one test case or suite.
type ActivityLogUnitTestSection struct {
	ActivityLogSection
	TestName              *string
	SuiteName             *string
	Summary               *string
	EmittedOutput         *string
	PerformanceTestOutput *string
	TestsPassedString     *string
	WasSkipped            *bool
	RunnablePath          *string
	RunnableUTI           *string
}

// ActivityLogMessage is a diagnostic attached to a log section.
type ActivityLogMessage struct {
	Type        string
	Title       string
	ShortTitle  *string
	Category    *string
	Location    *DocumentLocation
	Annotations []*ActivityLogMessageAnnotation
}

// ActivityLogMessageAnnotation is a note attached to a log message.
type ActivityLogMessageAnnotation struct {
	Title    string
	Location *DocumentLocation
}
