package rhi

// FramesInFlight bounds how many frames may be in simultaneous
// preparation/submission. Per-frame uniform buffers and descriptor-set
// pools are indexed by currentFrameIndex mod FramesInFlight.
const FramesInFlight = 3

// MaxDescriptorSets is the fixed upper bound on descriptor sets bound to a
// single pass, indexed by set slot.
const MaxDescriptorSets = 8

// ResourceGraceTicks is the number of consecutive Backend.Tick calls a
// tracked resource may sit with a refcount of 1 (i.e. held only by the
// backend's live-resource table) before it is destroyed.
const ResourceGraceTicks = 6
