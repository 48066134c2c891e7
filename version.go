package mirra

// Version is the SDK release version, reported in the User-Agent header.
const Version = "0.3.0"
