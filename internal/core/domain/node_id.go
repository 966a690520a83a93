package domain

import "strings"

// NodeKind distinguishes the node types in the execution sequence.
type NodeKind int

const (
	// KindJob is a regular job node.
	KindJob NodeKind = iota
	// KindPluginLoad is a plugin load node (plugin:X).
	KindPluginLoad
	// KindPluginUnload is a plugin unload node (unplug:X).
	KindPluginUnload
)

const (
	pluginPrefix = "plugin:"
	unplugPrefix = "unplug:"
)

// ParseNodeID classifies a predecessor identifier. For lifecycle nodes the
// returned name is the plugin identifier; for jobs it is the identifier
// itself.
func ParseNodeID(id string) (NodeKind, string) {
	switch {
	case strings.HasPrefix(id, pluginPrefix):
		return KindPluginLoad, strings.TrimPrefix(id, pluginPrefix)
	case strings.HasPrefix(id, unplugPrefix):
		return KindPluginUnload, strings.TrimPrefix(id, unplugPrefix)
	default:
		return KindJob, id
	}
}
