package config

// ParseArgumentExported exposes parseArgument for testing.
var ParseArgumentExported = parseArgument

// MergeYAMLExported exposes mergeNodes for testing.
var MergeYAMLExported = mergeNodes
