// Package animate turns rotating views of a scene into media files.
//
// An [Encoder] asks a [FrameRenderer] for one JPEG frame per camera azimuth,
// evenly spaced over a full turn, and hands the frame sequence to a single
// external tool chosen by the output extension:
//
//	.mp4, .ogv   ffmpeg     (mpeg4, libtheora)
//	.gif         convert    (ImageMagick, looping animation)
//	.jpeg, .png  montage    (ImageMagick, frames stacked vertically)
//
// Tools are invoked with an argument list, never through a shell. Frames are
// written as <dir>/<prefix><NNN>.jpeg and removed once the tool succeeds; when
// it fails they are left in place for inspection and the returned
// [*errors.ToolError] carries the command line, exit status and stderr.
//
// [*errors.ToolError]: github.com/matzehuels/arborheat/pkg/errors#ToolError
package animate
