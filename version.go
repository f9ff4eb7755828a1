package preemptrt

// Version is the current version of the preempt-rt library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Interface is the kernel interface the bindings go through
	Interface string
	// Deadline indicates whether SCHED_DEADLINE can be installed
	Deadline bool
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Interface: "sched_setscheduler",
		Deadline:  false,
	}
}
