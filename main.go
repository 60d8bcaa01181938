package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dicetable/audio"
	"github.com/lixenwraith/dicetable/physics"
	"github.com/lixenwraith/dicetable/render"
	"github.com/lixenwraith/dicetable/table"
)

const framePeriod = 16 * time.Millisecond // ~60 FPS

var (
	debugFlag = flag.Bool("debug", false, "write debug log to logs/dicetable.log")
	seedFlag  = flag.Int64("seed", 0, "rng seed, 0 = time-based")
)

type Game struct {
	screen   tcell.Screen
	session  *table.Session
	renderer *render.Table
	cues     *audio.Cues

	lastTick   time.Time
	lastImpact time.Time

	haveResult bool
	faces      [table.NumDice]int

	// Previous mouse button state for press-edge detection
	lastButtons tcell.ButtonMask
}

func NewGame(tun table.Tunables, seed int64) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("seed: %d", seed)

	world := physics.NewSolverWorld(tun.Gravity)
	session := table.NewSession(world, tun, rand.New(rand.NewSource(seed)))

	width, height := screen.Size()
	g := &Game{
		screen:   screen,
		session:  session,
		renderer: render.NewTable(width, height),
		cues:     audio.NewCues(),
		lastTick: time.Now(),
	}

	session.OnSettle(func(faces [table.NumDice]int) {
		g.faces = faces
		g.haveResult = true
		g.cues.Settle()
		log.Printf("settled: %v", faces)
	})

	if err := g.cues.Init(); err != nil {
		log.Printf("audio init failed: %v (continuing without audio)", err)
	}

	return g, nil
}

func (g *Game) roll() {
	g.haveResult = false
	g.cues.Roll()
	g.session.Roll()
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyEnter:
			g.roll()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == ' ' || ev.Rune() == 'r'):
			g.roll()
		}

	case *tcell.EventMouse:
		// Trigger on the press edge only; motion events repeat the mask
		pressed := ev.Buttons() &^ g.lastButtons
		g.lastButtons = ev.Buttons()
		if pressed&tcell.Button1 != 0 {
			g.roll()
		}

	case *tcell.EventResize:
		w, h := g.screen.Size()
		g.renderer.Resize(w, h)
		g.screen.Sync()
	}

	return true
}

func (g *Game) tick() {
	now := time.Now()
	g.session.Advance(now.Sub(g.lastTick))
	g.lastTick = now

	if g.session.Impacted() && now.Sub(g.lastImpact) > 80*time.Millisecond {
		g.cues.Impact()
		g.lastImpact = now
	}

	g.renderer.Draw(g.screen, g.session.DiceStates(), render.Status{
		Running:    g.session.Running(),
		HaveResult: g.haveResult,
		Faces:      g.faces,
	})
}

func (g *Game) run() {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *Game) cleanup() {
	g.cues.Close()
	g.screen.Fini()
}

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	tun, envSeed, err := loadTunables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad environment configuration: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = envSeed
	}

	game, err := NewGame(tun, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	// Restore the terminal before a crash report hits stderr
	defer func() {
		if r := recover(); r != nil {
			game.screen.Fini()
			fmt.Fprintf(os.Stderr, "\x1b[31mDICETABLE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	game.run()
}
