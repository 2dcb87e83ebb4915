package state

import "github.com/ElectricFeet/gutenberg/internal/blocks"

// ReusableBlock is a block definition stored independently of any
// document and referenced by ID from core/block placements.
type ReusableBlock struct {
	ID    string
	Title string
	Block blocks.Block
}

// ReusableState is the reusable-block registry slice: definitions by ID
// plus the set of IDs with a save in flight.
type ReusableState struct {
	Data     map[string]ReusableBlock
	IsSaving map[string]bool
}

func NewReusableState() *ReusableState {
	return &ReusableState{
		Data:     map[string]ReusableBlock{},
		IsSaving: map[string]bool{},
	}
}

func (s *ReusableState) with(mutate func(*ReusableState)) *ReusableState {
	next := *s
	mutate(&next)
	return &next
}

func cloneReusableData(m map[string]ReusableBlock) map[string]ReusableBlock {
	out := make(map[string]ReusableBlock, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func ReduceReusableBlocks(prev *ReusableState, action Action) *ReusableState {
	switch a := action.(type) {
	case FetchReusableBlocksSuccess:
		if len(a.ReusableBlocks) == 0 {
			return prev
		}
		return prev.with(func(n *ReusableState) {
			n.Data = cloneReusableData(prev.Data)
			for _, rb := range a.ReusableBlocks {
				n.Data[rb.ID] = rb
			}
		})
	case UpdateReusableBlock:
		return prev.with(func(n *ReusableState) {
			n.Data = cloneReusableData(prev.Data)
			rb := a.ReusableBlock
			rb.ID = a.ID
			n.Data[a.ID] = rb
		})
	case SaveReusableBlock:
		if prev.IsSaving[a.ID] {
			return prev
		}
		return prev.with(func(n *ReusableState) {
			n.IsSaving = cloneBoolMap(prev.IsSaving)
			n.IsSaving[a.ID] = true
		})
	case SaveReusableBlockSuccess:
		return prev.with(func(n *ReusableState) {
			n.Data = cloneReusableData(prev.Data)
			n.IsSaving = cloneBoolMap(prev.IsSaving)
			delete(n.IsSaving, a.ID)
			if a.UpdatedID != "" && a.UpdatedID != a.ID {
				// temporary id finalized by the backend
				if rb, ok := n.Data[a.ID]; ok {
					delete(n.Data, a.ID)
					rb.ID = a.UpdatedID
					n.Data[a.UpdatedID] = rb
				}
			}
		})
	case SaveReusableBlockFailure:
		if !prev.IsSaving[a.ID] {
			return prev
		}
		return prev.with(func(n *ReusableState) {
			n.IsSaving = cloneBoolMap(prev.IsSaving)
			delete(n.IsSaving, a.ID)
		})
	case DeleteReusableBlock:
		if _, ok := prev.Data[a.ID]; !ok {
			return prev
		}
		return prev.with(func(n *ReusableState) {
			n.Data = cloneReusableData(prev.Data)
			delete(n.Data, a.ID)
		})
	}
	return prev
}
