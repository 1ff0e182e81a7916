// Package ornament animates an interactive particle ornament that morphs
// between an assembled cone and a scattered cloud.
//
// Three particle groups (a dense filler, shell ornaments and a helical
// ribbon) chase target buffers that are regenerated once per state change.
// Every rendered frame the [Engine] moves each instance a fixed fraction of
// the way to its target and writes a [Transform] per instance for the
// renderer to draw.
//
// # Quick start
//
//	scene, err := ornament.NewScene(ornament.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer scene.Close()
//	scene.Enter(ctx, false) // pointer mode
//
//	// each frame
//	scene.Update(1.0 / 60)
//	for _, g := range scene.Groups() {
//		for _, t := range g.Transforms() {
//			// draw t
//		}
//	}
//
//	// on click
//	scene.Toggle()
//
// # Gesture mode
//
// In gesture mode the scene ignores Toggle. Feed hand landmark snapshots to
// [Scene.SubmitLandmarks] as they arrive; a [Classifier] smooths the index
// fingertip into a pointer and derives pinch and open-hand flags with a dead
// zone between them. A poller samples the flags every 100ms: a new pinch
// assembles the ornament and a new open hand scatters it. While scattered,
// the pointer steers the spin.
//
// # Configuration
//
// [LoadConfig] reads a TOML file and then ORNAMENT_* environment variables
// on top of [DefaultConfig].
//
// The ECS adapter in ornament/ecs forwards every [MorphEvent] into a
// [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package ornament
