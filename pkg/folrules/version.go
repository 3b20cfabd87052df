package folrules

// Version is the package version string, bumped on release.
const Version = "v0.1.0"
