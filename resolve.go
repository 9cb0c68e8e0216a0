package texpack

// resolveChannel finds the nearest source feeding a channel's input slot on
// the terminal node, walking backward through pass-through nodes in
// breadth-first order so the shallowest image source wins. Ties at the same
// depth go to the first hit in the host's stable slot order.
//
// An unlinked slot yields its static value as an explicit constant. A
// linked chain that runs out without an image source yields the channel
// default silently (Found is false). The function is total: it never fails.
func resolveChannel(g Graph, terminal NodeID, ch Channel) ChannelSource {
	spec := &channelTable[ch]

	start, ok := linkFor(g, terminal, spec)
	if !ok {
		if v, ok := valueFor(g, terminal, spec); ok {
			return constantSource(ch, terminal, v)
		}
		return defaultSource(ch)
	}

	// Breadth-first over upstream links. The visited set guards cycles;
	// graphs are not guaranteed acyclic.
	queue := []NodeID{start}
	visited := map[NodeID]bool{start: true}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		kind := g.Kind(n)
		if kind == KindImage {
			if img, ok := g.Image(n); ok {
				return imageSource(ch, n, img, spec.extract)
			}
			// An image node with no pixels behind it forwards the
			// search like a pass-through.
		} else if kind != KindPassThrough {
			continue
		}

		for _, slot := range g.Slots(n) {
			from, _, ok := g.Link(n, slot)
			if ok && !visited[from] {
				visited[from] = true
				queue = append(queue, from)
			}
		}
	}

	return defaultSource(ch)
}

// linkFor follows the channel's slot link, trying the alias slot name when
// the primary is not linked.
func linkFor(g Graph, terminal NodeID, spec *channelSpec) (NodeID, bool) {
	if from, _, ok := g.Link(terminal, spec.slot); ok {
		return from, true
	}
	if spec.aliasSlot != "" {
		if from, _, ok := g.Link(terminal, spec.aliasSlot); ok {
			return from, true
		}
	}
	return "", false
}

// valueFor reads the static slot value, trying the alias slot name when the
// primary slot does not exist on the node.
func valueFor(g Graph, terminal NodeID, spec *channelSpec) (RGBA, bool) {
	if v, ok := g.Value(terminal, spec.slot); ok {
		return v, true
	}
	if spec.aliasSlot != "" {
		if v, ok := g.Value(terminal, spec.aliasSlot); ok {
			return v, true
		}
	}
	return RGBA{}, false
}
