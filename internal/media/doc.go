// Package media classifies file paths into coarse media types.
//
// The coarse type is a closed set (text, image, audio, video, generic)
// derived purely from the file extension. It selects which modality
// analyzer handles a file and feeds the type-mismatch conflict rules in
// internal/fusion. Adding a new modality means adding a new CoarseType
// constant and extension set here plus an analyzer implementation; fusion
// logic is untouched.
package media
