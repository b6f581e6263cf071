package standings

const Version = "v0.3.1"
