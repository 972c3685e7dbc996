// Package occlusion decides, per pixel, how much of the geometry between the
// camera and the player stays visible.
//
// Three strategies are available through Mode: an analytic fade around the
// camera->player sightline (Alpha), a hard cutout of a detected interior
// (Region.Contains), and a hybrid of the two. The resulting alpha becomes a
// visible pixel either through an ordered dither (Keep) or by blending.
//
// Shade is the single entry point used by both the depth prepass and the
// color pass. It is a pure function of the fragment, the per-frame Params and
// the lighting Pipeline, so both passes reach the same discard decision for
// the same fragment.
package occlusion
