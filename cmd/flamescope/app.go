package main

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/camera"
	"github.com/Oloruntobi1/flamescope/internal/classify"
	"github.com/Oloruntobi1/flamescope/internal/config"
	"github.com/Oloruntobi1/flamescope/internal/interaction"
	"github.com/Oloruntobi1/flamescope/internal/layout"
	"github.com/Oloruntobi1/flamescope/internal/pprofdecode"
	"github.com/Oloruntobi1/flamescope/internal/profileio"
	"github.com/Oloruntobi1/flamescope/internal/render"
)

func init() {
	// SDL requires all of its calls to originate from the thread that
	// called sdl.Init.
	runtime.LockOSThread()
}

var errQuit = errors.New("quit requested")

const (
	initialWidth  = 1280
	initialHeight = 720
)

// app owns every piece of mutable per-frame state: the call tree, its flat
// frame list, the camera, and the interaction machine, all read and
// mutated from a single poll/update/render/paint loop.
type app struct {
	root     *calltree.Node
	metadata classify.Metadata
	cfg      config.Config

	frames []layout.FrameRecord
	cam    *camera.Camera
	mach   *interaction.Machine

	window   *sdl.Window
	renderer *render.Renderer

	width, height int
}

func runGPU(root *calltree.Node, metadata classify.Metadata, sourceInfo string, cfg config.Config) error {
	a, quit, err := newApp(root, metadata, cfg, sourceInfo)
	if err != nil {
		return err
	}
	defer quit()
	return a.run(nil)
}

func runGPULive(root *calltree.Node, metadata classify.Metadata, sourceInfo, url string, refresh time.Duration, filter calltree.FilterFunc, cfg config.Config) error {
	a, quit, err := newApp(root, metadata, cfg, sourceInfo)
	if err != nil {
		return err
	}
	defer quit()

	poller := profileio.NewPoller(url, refresh)
	updates := make(chan treeUpdate, 1)
	go poller.Run(context.Background(), func(data []byte) {
		updates <- decodeLiveUpdate(data, filter)
	}, func(err error) {
		log.Warn().Err(err).Msg("live refresh failed")
	})

	return a.run(updates)
}

type treeUpdate struct {
	root     *calltree.Node
	metadata classify.Metadata
	err      error
}

func decodeLiveUpdate(data []byte, filter calltree.FilterFunc) treeUpdate {
	profile, err := pprofdecode.Decode(data)
	if err != nil {
		return treeUpdate{err: err}
	}
	metadata := classify.Classify(sampleTypesOf(profile))
	root := calltree.FromProfile(profile, metadata, filter)
	return treeUpdate{root: root, metadata: metadata}
}

func newApp(root *calltree.Node, metadata classify.Metadata, cfg config.Config, title string) (*app, func(), error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, func() {}, &render.RenderUnavailableError{Reason: err.Error()}
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		initialWidth, initialHeight, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, func() {}, &render.RenderUnavailableError{Reason: err.Error()}
	}

	r, err := render.NewRenderer(window)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, func() {}, err
	}

	if err := r.LoadFont(cfg.FontFamily, cfg.FontSize, 1.0, cfg.TextColor); err != nil {
		log.Warn().Err(err).Msg("failed to load font, labels will be skipped")
	}

	frames := layout.GenerateFrames(root)
	frameHeight := layout.FrameHeight(cfg.FontSize, cfg.FramePadding)
	contentHeight := layout.GraphHeight(layout.MaxDepth(frames), frameHeight)

	cam := camera.New(initialWidth, initialHeight, contentHeight, false)
	mach := interaction.NewMachine(cam)
	mach.SetFrames(frames, initialWidth, frameHeight)
	mach.SelectInitialFrame(frames)
	mach.ZoomOnScroll = cfg.ZoomOnScroll
	mach.ScrollZoomSpeed = cfg.ScrollZoomSpeed
	mach.ScrollZoomInverted = cfg.ScrollZoomInverted

	a := &app{
		root:     root,
		metadata: metadata,
		cfg:      cfg,
		frames:   frames,
		cam:      cam,
		mach:     mach,
		window:   window,
		renderer: r,
		width:    initialWidth,
		height:   initialHeight,
	}

	quit := func() {
		r.Destroy()
		window.Destroy()
		sdl.Quit()
	}
	return a, quit, nil
}

func (a *app) run(updates <-chan treeUpdate) error {
	for {
		if err := a.poll(); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}

		if updates != nil {
			select {
			case u := <-updates:
				a.applyUpdate(u)
			default:
			}
		}

		a.mach.Update()

		if err := a.render(); err != nil {
			return err
		}
	}
}

func (a *app) applyUpdate(u treeUpdate) {
	if u.err != nil {
		log.Warn().Err(u.err).Msg("live refresh failed")
		return
	}
	selected := a.mach.SelectedID
	var selectedName string
	if n := findByID(a.root, selected); n != nil {
		selectedName = n.Name
	}

	a.root = u.root
	a.metadata = u.metadata
	a.frames = layout.GenerateFrames(a.root)
	frameHeight := layout.FrameHeight(a.cfg.FontSize, a.cfg.FramePadding)
	a.mach.SetFrames(a.frames, float64(a.width), frameHeight)

	if selectedName != "" {
		if n := calltree.FindByName(a.root, selectedName); n != nil {
			a.mach.SetSelectedFrame(findFrame(a.frames, n.ID))
		}
	}
}

func findByID(root *calltree.Node, id string) *calltree.Node {
	var found *calltree.Node
	calltree.Walk(root, func(n *calltree.Node) {
		if n.ID == id {
			found = n
		}
	})
	return found
}

func findFrame(frames []layout.FrameRecord, id string) layout.FrameRecord {
	for _, f := range frames {
		if f.ID == id {
			return f
		}
	}
	return layout.FrameRecord{}
}

func (a *app) poll() error {
	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		switch evt := evt.(type) {
		case *sdl.QuitEvent:
			return errQuit
		case *sdl.WindowEvent:
			if evt.Event == sdl.WINDOWEVENT_RESIZED || evt.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				a.resize(int(evt.Data1), int(evt.Data2))
			}
		case *sdl.MouseButtonEvent:
			a.handleMouseButton(evt)
		case *sdl.MouseMotionEvent:
			a.mach.PointerMove(float64(evt.X), float64(evt.Y))
		case *sdl.MouseWheelEvent:
			mx, my, _ := sdl.GetMouseState()
			a.mach.Wheel(float64(evt.Y), float64(mx), float64(my))
		case *sdl.KeyboardEvent:
			if evt.Type == sdl.KEYDOWN && evt.Keysym.Sym == sdl.K_ESCAPE {
				return errQuit
			}
		}
	}
	return nil
}

func (a *app) handleMouseButton(evt *sdl.MouseButtonEvent) {
	if evt.Button != sdl.BUTTON_LEFT {
		return
	}
	switch evt.Type {
	case sdl.MOUSEBUTTONDOWN:
		a.mach.PointerDown(float64(evt.X), float64(evt.Y))
	case sdl.MOUSEBUTTONUP:
		a.mach.PointerUp()
		a.mach.Click(float64(evt.X), float64(evt.Y))
	}
}

func (a *app) resize(w, h int) {
	a.width, a.height = w, h
	a.cam.ViewportWidth = float64(w)
	a.cam.ViewportHeight = float64(h)
	frameHeight := layout.FrameHeight(a.cfg.FontSize, a.cfg.FramePadding)
	a.mach.SetFrames(a.frames, float64(w), frameHeight)
}

func (a *app) render() error {
	if err := a.renderer.Clear(a.cfg.BackgroundColor); err != nil {
		return err
	}

	frameHeight := layout.FrameHeight(a.cfg.FontSize, a.cfg.FramePadding)
	draws := render.ComputeFrameDraws(
		a.frames, a.cam.ViewportWidth, a.cam.ViewportHeight, frameHeight,
		a.cam.X, a.cam.Y, a.cam.Scale,
		a.cfg.PrimaryColor, a.cfg.SecondaryColor,
		a.mach.SelectedID, a.mach.HoveredID,
		a.cfg.Opacities,
	)
	if err := a.renderer.DrawFrames(draws); err != nil {
		return err
	}

	slots := render.ComputeTextSlots(draws, a.renderer.Atlas(), func(d render.FrameDraw) string {
		return d.Frame.Name
	}, a.cfg.FontSize, a.cfg.FramePadding, 1.0)
	if err := a.renderer.DrawText(slots, a.cfg.ShadowOpacity); err != nil {
		return err
	}

	a.renderer.Present()
	return nil
}
