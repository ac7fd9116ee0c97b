// Package pipeline provides admission control and per-request orchestration
// for audio processing. It is structured into small files by concern:
//
//   - gate.go: concurrency gate (TryAcquire/Release/Snapshot) and the Slot
//     capability that makes double release structurally a no-op.
//   - service.go: core Service type, Artifact, Formats/Ready.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - validate.go: pre-gate upload validation and format sets.
//   - upload.go: scratch-file spooling for accepted multipart uploads.
//   - errors.go: outcome taxonomy as error types and helpers
//     (IsInvalidInput, IsOverloaded, IsEngineFailure).
//   - exec.go: command runner abstraction over os/exec.
//   - transcode.go: ffmpeg-backed Transcoder adapter.
//   - recognize.go: whisper-cli-backed Recognizer adapter.
//   - document.go: PDF transcript report renderer.
//   - transcribe.go: transcribe-to-document orchestration.
//   - convert.go: convert-format-only orchestration.
//   - status.go: load snapshot for /api/status.
//
// The only state shared across requests is the gate's occupancy. Every
// admitted request releases its slot and its scratch files on all exit
// paths; external packages should treat Service's exported methods as the
// orchestration surface and the stage interfaces as extension points.
package pipeline
