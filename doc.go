/*
Package dsp defines the evaluation model of a tree-shaped audio processing
graph.

Concept

Audio is pulled, not pushed. A caller holds the root node of a tree and asks
it for one buffer of audio:

    dsp.Pull(root, out, dsp.Settings{Frames: 512, Channels: 2})

The node pulls each of its inputs into a scratch buffer, sums the scratch
into out with a per-channel gain derived from volume and pan, then applies
its own in-place processing. Inputs do the same for their own inputs, so a
single call evaluates the whole tree.

Nodes

Every node implements Node. Embedding Base provides the defaults: volume
1.0, centered pan, no inputs and no processing. A node with inputs is a
mixer or an effect; an effect overrides ProcessBuffer. A node without
inputs that synthesizes audio implements Generator, which replaces the
input pulling with its own AudioRequested.

Panning

GainPerChannel maps volume and pan to left and right gains with a linear
law: the channel the pan points to keeps the full volume, the other one is
attenuated down to zero at the extremes. Pan values outside [-1, 1] are
not clamped.

Buffers

Samples are interleaved: sample j of frame i is at index i*channels+j. The
Buffer interface is all the core needs, allocation of scratch buffers is
delegated to Buffer.Zeroed so implementations may pool them.

Concurrency

A pull is synchronous and runs to completion. Pulls over disjoint trees may
run concurrently. Pulls sharing a node must be synchronized by the caller.
*/
package dsp
