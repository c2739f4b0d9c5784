package xcode

import "time"

// ActionsInvocationRecord is the root object of a result bundle.
type ActionsInvocationRecord struct {
	MetadataRef *Reference
	Metrics     ResultMetrics
	Issues      ResultIssueSummaries
	Actions     []*ActionRecord
	Archive     *ArchiveInfo
}

// ActionsInvocationMetadata describes the workspace and scheme an
// invocation ran against.
type ActionsInvocationMetadata struct {
	CreatingWorkspaceFilePath string
	UniqueIdentifier          string
	SchemeIdentifier          *EntityIdentifier
}

// ActionRecord is one scheme action (build, test, ...) of an
// invocation.
type ActionRecord struct {
	SchemeCommandName string
	SchemeTaskName    string
	Title             *string
	StartedTime       time.Time
	EndedTime         time.Time
	RunDestination    ActionRunDestinationRecord
	BuildResult       ActionResult
	ActionResult      ActionResult
}

// Duration returns how long the action ran.
func (a *ActionRecord) Duration() time.Duration {
	return a.EndedTime.Sub(a.StartedTime)
}

// ActionResult is the outcome of a build or test action.
type ActionResult struct {
	ResultName     string
	Status         string
	Metrics        ResultMetrics
	Issues         ResultIssueSummaries
	Coverage       CodeCoverageInfo
	TimelineRef    *Reference
	LogRef         *Reference
	TestsRef       *Reference
	DiagnosticsRef *Reference
	ConsoleLogRef  *Reference
}

// ActionRunDestinationRecord describes where an action ran.
type ActionRunDestinationRecord struct {
	DisplayName         string
	TargetArchitecture  string
	TargetDeviceRecord  ActionDeviceRecord
	LocalComputerRecord ActionDeviceRecord
	TargetSDKRecord     ActionSDKRecord
}

// ActionDeviceRecord describes a device or simulator.
type ActionDeviceRecord struct {
	Name                                  string
	IsConcreteDevice                      bool
	OperatingSystemVersion                string
	OperatingSystemVersionWithBuildNumber *string
	NativeArchitecture                    string
	ModelName                             string
	ModelCode                             *string
	ModelUTI                              *string
	Identifier                            string
	IsWireless                            *bool
	CPUKind                               *string
	CPUCount                              *int
	CPUSpeedInMHz                         *int
	BusSpeedInMHz                         *int
	RAMSizeInMegabytes                    *int
	PhysicalCPUCoresPerPackage            *int
	LogicalCPUCoresPerPackage             *int
	PlatformRecord                        ActionPlatformRecord
}

// ActionPlatformRecord names a platform such as iOS Simulator.
type ActionPlatformRecord struct {
	Identifier      string
	UserDescription string
}

// ActionSDKRecord describes the SDK an action built against.
type ActionSDKRecord struct {
	Name                   string
	Identifier             string
	OperatingSystemVersion string
	IsInternal             *bool
}

// ArchiveInfo locates the archive produced by an archive action.
type ArchiveInfo struct {
	Path *string
}

// CodeCoverageInfo points to the coverage data of a test action.
type CodeCoverageInfo struct {
	HasCoverageData *bool
	ReportRef       *Reference
	ArchiveRef      *Reference
}

// DocumentLocation is a position in a source file, encoded as a URL
// with a fragment.
type DocumentLocation struct {
	URL              string
	ConcreteTypeName string
}

// EntityIdentifier identifies a container or blueprint in a workspace.
type EntityIdentifier struct {
	ContainerName string
	EntityName    string
	EntityType    string
	SharedState   string
}

// ObjectID is the ID used to fetch an object from a result bundle.
type ObjectID struct {
	Hash string
}

// Reference points at another object in the result bundle, to be
// fetched separately by ID.
type Reference struct {
	ID         string
	TargetType *TypeDefinition
}

// TypeDefinition names the type of a referenced object.
type TypeDefinition struct {
	Name      string
	Supertype *TypeDefinition
}

// ResultMetrics are the summary counters of an invocation or
// action. xcresulttool omits counters that are zero.
type ResultMetrics struct {
	AnalyzerWarningCount *int
	ErrorCount           *int
	TestsCount           *int
	TestsFailedCount     *int
	TestsSkippedCount    *int
	WarningCount         *int
}
