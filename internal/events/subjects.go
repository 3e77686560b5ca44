package events

const (
	StreamName   = "VMX_EVENTS"
	StreamMaxAge = "720h" // 30 days

	SubjectBenchmarkSeeded = "vmx.benchmark.seeded"
)

func SubjectBenchmarkCreated(id string) string    { return "vmx.benchmark." + id + ".created" }
func SubjectBenchmarkUpdated(id string) string    { return "vmx.benchmark." + id + ".updated" }
func SubjectBenchmarkDeleted(id string) string    { return "vmx.benchmark." + id + ".deleted" }
func SubjectBenchmarkCalibrated(id string) string { return "vmx.benchmark." + id + ".calibrated" }

func SubjectScenarioComputed(benchmarkID string) string {
	return "vmx.scenario." + benchmarkID + ".computed"
}
func SubjectScenarioSaved(id string) string   { return "vmx.scenario." + id + ".saved" }
func SubjectScenarioDeleted(id string) string { return "vmx.scenario." + id + ".deleted" }
