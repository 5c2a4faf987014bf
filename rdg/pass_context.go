package rdg

import "github.com/kestrel3d/rdgo/rhi"

// PassContext is passed to every pass's executor callback at step 6 of
// execution (§4.4, §6.3). Command is the command list the pass should
// record into; Builder is a back-pointer for resolve lookups from within
// the callback; Descriptors holds the sets allocated for this pass during
// descriptor-set preparation, indexed by set slot; PassIndex is the
// user-assigned 3D index recovered from original_source for client
// pipeline keying (§4 SUPPLEMENTED FEATURES).
type PassContext struct {
	Command     rhi.CommandContext
	Builder     *Builder
	Descriptors [rhi.MaxDescriptorSets]rhi.DescriptorSet
	PassIndex   [3]uint32
}
