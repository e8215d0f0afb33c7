// Package studio owns the avatar being edited and the frames painted from it.
//
// A [Controller] holds the single current configuration. Edits go through
// [Controller.Set], [Controller.Randomize], [Controller.Reset] and
// [Controller.Load]; readers get a copy from [Controller.Config]. The
// compositor never sees anything but such a copy.
//
// [Controller.Generate] runs one full composite pass. Passes never overlap: a
// request arriving while a pass is in flight is dropped and reported as such.
// [Frames] sits in front of Generate and coalesces bursts of edits into at
// most one pass per tick:
//
//	ctrl, _ := studio.New()
//	frames := studio.NewFrames(ctrl)
//	go frames.Run(ctx, 16*time.Millisecond)
//
//	ctrl.Set(avatar.SlotHairStyle, "afro") // schedules a frame
//	ctrl.Set(avatar.SlotMouth, "smile")    // same frame
package studio
