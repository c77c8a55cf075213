package multiagent

// Version is the release of the library and binary.
// Release builds override it with -ldflags "-X github.com/supraja777/multiagent.Version=...".
var Version = "0.1.0-dev"
