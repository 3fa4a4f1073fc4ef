// Package stack implements the core of the image stack viewer: addressing
// multi-frame/multi-channel image stacks and materializing one displayable
// frame at a time.
//
// A stack comes from one of two Source variants: a Dense in-memory N-D array
// (rows and columns first, any number of extra dimensions after), or a File
// wrapping a lazy, seek-addressable FrameReader where only the current frame
// is ever decoded.
//
// Describe inspects a Source and returns its navigable AxisSet (channel axis
// first if present, frame axis last) without touching pixel data. Resolve
// takes the AxisSet and a current index per axis and produces an owned Frame
// buffer, seeking and decoding lazily on the file path. Viewer ties the two
// together with the reset lifecycle (new source or channel-split toggle
// recomputes axes and zeroes the indexes), and Player is the forward-only
// play/pause state machine driving the frame axis.
//
// Everything here is single-threaded: callers schedule Player steps from
// their own event loop so pause requests and redraws are observed between
// frames.
package stack
