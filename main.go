package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"github.com/go-gl/mathgl/mgl64"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"nbody-sim/pkg/barneshut"
	"nbody-sim/pkg/physics"
	"nbody-sim/pkg/simulation"
)

const (
	screenWidth  = 1920
	screenHeight = 1000
	trailMaxLife = 120.0 // czas życia śladu w sekundach

	// UI
	uiBtnW   = 100
	uiBtnH   = 28
	uiBtnPad = 12

	maxTrailSegments = 600 // maksymalna liczba segmentów śladu na ciało (ograniczenie wydajnościowe)
)

// TrailSegment ---
type TrailSegment struct {
	X0, Y0, X1, Y1 float64
	Life           float64
	Color          color.RGBA
}

// Game ---
type Game struct {
	sim     *simulation.Simulator
	trails  [][]TrailSegment
	lastPos []mgl64.Vec2
	paused  bool

	// nakładka z drzewem czwórkowym
	treeVisible bool

	// Add mode: narzędzie dodawania nowych ciał
	addMode   bool    // czy jesteśmy w trybie dodawania
	addLocked bool    // czy nowe ciało będzie zablokowane
	addMass   float64 // domyślna masa nowego ciała
	addRadius float64 // domyślny promień nowego ciała

	// widoczność panelu skrótów
	shortcutsVisible bool

	// ścieżka do oryginalnego pliku konfiguracyjnego (do resetu)
	initialConfigPath string
}

// Update ---
func (g *Game) Update() error {
	// klawisze
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.advanceOneStep()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.treeVisible = !g.treeVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}

	// przełączniki w trybie Add
	if g.addMode {
		if inpututil.IsKeyJustPressed(ebiten.KeyL) {
			g.addLocked = !g.addLocked
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
			g.addMass *= 1.1
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyJ) {
			g.addMass *= 0.9
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.addRadius *= 1.1
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyT) {
			g.addRadius *= 0.9
		}
	}

	// UI kliknięcia
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		// pozycyjne obliczenia przycisków (Pause, Step, Quit, Tree, Reset, Add)
		pauseX := screenWidth - uiBtnPad - uiBtnW
		pauseY := uiBtnPad
		stepX := pauseX - uiBtnPad - uiBtnW
		stepY := uiBtnPad
		quitX := stepX - uiBtnPad - uiBtnW
		quitY := uiBtnPad
		treeX := quitX - uiBtnPad - uiBtnW
		treeY := uiBtnPad
		resetX := treeX - uiBtnPad - uiBtnW
		addX := resetX - uiBtnPad - uiBtnW
		addY := uiBtnPad

		if pointInRect(mx, my, addX, addY, uiBtnW, uiBtnH) {
			g.addMode = !g.addMode
			if g.addMode {
				g.addMass = 100.0
				g.addRadius = 8.0
				g.addLocked = false
			}
			return nil
		}
		if pointInRect(mx, my, resetX, addY, uiBtnW, uiBtnH) {
			if err := g.resetSimulation(); err != nil {
				log.WithError(err).Error("reset nie powiódł się")
			}
			return nil
		}
		if pointInRect(mx, my, treeX, treeY, uiBtnW, uiBtnH) {
			g.treeVisible = !g.treeVisible
			return nil
		}
		if pointInRect(mx, my, quitX, quitY, uiBtnW, uiBtnH) {
			os.Exit(0)
			return nil
		}
		if pointInRect(mx, my, stepX, stepY, uiBtnW, uiBtnH) {
			if g.paused {
				g.advanceOneStep()
			}
			return nil
		}
		if pointInRect(mx, my, pauseX, pauseY, uiBtnW, uiBtnH) {
			g.paused = !g.paused
			return nil
		}

		// kliknięcie poza UI: w trybie add dodaj ciało w miejscu kursora
		if g.addMode {
			pos := mgl64.Vec2{float64(mx) - float64(screenWidth)/2, float64(my) - float64(screenHeight)/2}
			nb := physics.NewBody(pos.X(), pos.Y(), 0, 0, g.addMass)
			nb.Radius = g.addRadius
			nb.Locked = g.addLocked
			nb.ColorC = color.RGBA{200, 200, 255, 255}
			if nb.Locked {
				nb.ColorC = color.RGBA{200, 200, 200, 255}
			}
			// dodaj do symulacji i pomocniczych tablic
			g.sim.Bodies = append(g.sim.Bodies, nb)
			g.lastPos = append(g.lastPos, nb.Pos)
			g.trails = append(g.trails, []TrailSegment{})
			// pozostajemy w trybie add, aby dodać kolejne
			return nil
		}
	}

	if g.paused {
		return nil
	}

	g.advanceOneStep()
	return nil
}

// advanceOneStep ---
func (g *Game) advanceOneStep() {
	g.sim.Update()

	// update śladów
	for i := range g.sim.Bodies {
		b := g.sim.Bodies[i]
		seg := TrailSegment{
			X0:    float64(screenWidth)/2 + g.lastPos[i].X(),
			Y0:    float64(screenHeight)/2 + g.lastPos[i].Y(),
			X1:    float64(screenWidth)/2 + b.Pos.X(),
			Y1:    float64(screenHeight)/2 + b.Pos.Y(),
			Life:  trailMaxLife,
			Color: b.ColorC,
		}
		g.trails[i] = append(g.trails[i], seg)
		// ogranicz długość śladu aby nie rysować zbyt wielu segmentów
		if len(g.trails[i]) > maxTrailSegments {
			start := len(g.trails[i]) - maxTrailSegments
			g.trails[i] = g.trails[i][start:]
		}
		g.lastPos[i] = b.Pos
		// trim by life
		newTrail := g.trails[i][:0]
		for j := range g.trails[i] {
			g.trails[i][j].Life -= g.sim.Dt
			if g.trails[i][j].Life > 0 {
				newTrail = append(newTrail, g.trails[i][j])
			}
		}
		g.trails[i] = newTrail
	}
}

// drawLine - prosty Bresenham do rysowania linii (ślady, nakładka drzewa)
func drawLine(img *ebiten.Image, x0, y0, x1, y1 float64, clr color.RGBA) {
	ix0 := int(math.Round(x0))
	iy0 := int(math.Round(y0))
	ix1 := int(math.Round(x1))
	iy1 := int(math.Round(y1))
	dx := int(math.Abs(float64(ix1 - ix0)))
	sx := 1
	if ix0 >= ix1 {
		sx = -1
	}
	dy := -int(math.Abs(float64(iy1 - iy0)))
	sy := 1
	if iy0 >= iy1 {
		sy = -1
	}
	err := dx + dy
	for {
		if ix0 >= 0 && iy0 >= 0 && ix0 < screenWidth && iy0 < screenHeight {
			img.Set(ix0, iy0, clr)
		}
		if ix0 == ix1 && iy0 == iy1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

// drawCircle - wypełnione koło (prostą metodą) - wystarczające dla małych promieni
func drawCircle(screen *ebiten.Image, cx, cy, r float64, clr color.RGBA) {
	ir := int(math.Ceil(r))
	rr := r * r
	for dy := -ir; dy <= ir; dy++ {
		y := int(math.Round(cy)) + dy
		if y < 0 || y >= screenHeight {
			continue
		}
		xspan := math.Sqrt(math.Max(0, rr-float64(dy*dy)))
		xmin := int(math.Round(cx - xspan))
		xmax := int(math.Round(cx + xspan))
		if xmin < 0 {
			xmin = 0
		}
		if xmax >= screenWidth {
			xmax = screenWidth - 1
		}
		for x := xmin; x <= xmax; x++ {
			screen.Set(x, y, clr)
		}
	}
}

// drawTreeOverlay rysuje prostokąty węzłów drzewa z ostatniego kroku.
func drawTreeOverlay(screen *ebiten.Image, tree *barneshut.Tree) {
	clr := color.RGBA{60, 180, 90, 120}
	cx := float64(screenWidth) / 2
	cy := float64(screenHeight) / 2
	tree.Walk(func(n *barneshut.Node, b barneshut.Bounds) {
		x0 := cx + b.MinX
		x1 := cx + b.MaxX
		y0 := cy + b.MinY
		y1 := cy + b.MaxY
		drawLine(screen, x0, y0, x1, y0, clr)
		drawLine(screen, x1, y0, x1, y1, clr)
		drawLine(screen, x1, y1, x0, y1, clr)
		drawLine(screen, x0, y1, x0, y0, clr)
	})
}

// Draw ---
func (g *Game) Draw(screen *ebiten.Image) {
	// nakładka drzewa pod ciałami
	if g.treeVisible && g.sim.Solver.Method != "direct" {
		drawTreeOverlay(screen, g.sim.Tree())
	}

	// trails
	margin := 64
	for _, trail := range g.trails {
		for _, s := range trail {
			// pomiń segmenty całkowicie poza widocznym obszarem (z marginesem)
			if (int(s.X0) < -margin && int(s.X1) < -margin) || (int(s.X0) > screenWidth+margin && int(s.X1) > screenWidth+margin) || (int(s.Y0) < -margin && int(s.Y1) < -margin) || (int(s.Y0) > screenHeight+margin && int(s.Y1) > screenHeight+margin) {
				continue
			}
			drawLine(screen, s.X0, s.Y0, s.X1, s.Y1, s.Color)
		}
	}
	// bodies
	for i := range g.sim.Bodies {
		b := g.sim.Bodies[i]
		x := float64(screenWidth)/2 + b.Pos.X()
		y := float64(screenHeight)/2 + b.Pos.Y()
		drawCircle(screen, x, y, b.Radius, b.ColorC)
	}

	// UI
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Env: %s\nBodies: %d\nSolver: %s (theta=%.2f)\nPaused: %v",
		g.sim.Name, len(g.sim.Bodies), g.sim.Solver.Method, g.sim.Solver.Theta, g.paused))
	drawShortcuts(screen, g)

	// rysowanie przycisków w prawym górnym rogu
	pauseX := screenWidth - uiBtnPad - uiBtnW
	pauseY := uiBtnPad
	stepX := pauseX - uiBtnPad - uiBtnW
	stepY := uiBtnPad
	quitX := stepX - uiBtnPad - uiBtnW
	quitY := uiBtnPad
	treeX := quitX - uiBtnPad - uiBtnW
	treeY := uiBtnPad
	resetX := treeX - uiBtnPad - uiBtnW
	addX := resetX - uiBtnPad - uiBtnW
	addY := uiBtnPad

	mx, my := ebiten.CursorPosition()
	drawButton(screen, addX, addY, uiBtnW, uiBtnH, "Add", g.addMode, false, pointInRect(mx, my, addX, addY, uiBtnW, uiBtnH))
	drawButton(screen, resetX, addY, uiBtnW, uiBtnH, "Reset", false, false, pointInRect(mx, my, resetX, addY, uiBtnW, uiBtnH))
	drawButton(screen, treeX, treeY, uiBtnW, uiBtnH, "Tree", g.treeVisible, g.sim.Solver.Method == "direct", pointInRect(mx, my, treeX, treeY, uiBtnW, uiBtnH))
	drawButton(screen, quitX, quitY, uiBtnW, uiBtnH, "Quit", false, false, pointInRect(mx, my, quitX, quitY, uiBtnW, uiBtnH))
	drawButton(screen, stepX, stepY, uiBtnW, uiBtnH, "Step", false, !g.paused, pointInRect(mx, my, stepX, stepY, uiBtnW, uiBtnH))
	pauseLabel := "Pause"
	if g.paused {
		pauseLabel = "Resume"
	}
	drawButton(screen, pauseX, pauseY, uiBtnW, uiBtnH, pauseLabel, g.paused, false, pointInRect(mx, my, pauseX, pauseY, uiBtnW, uiBtnH))

	// jeśli w trybie Add - pokaż podgląd pozycji i ustawienia
	if g.addMode {
		px := float64(mx)
		py := float64(my)
		col := color.RGBA{200, 200, 255, 160}
		if g.addLocked {
			col = color.RGBA{200, 200, 200, 200}
		}
		drawCircle(screen, px, py, g.addRadius, col)
		text.Draw(screen, "Add mode: L toggle Locked, click to place", basicfont.Face7x13, 12, 80, color.RGBA{220, 220, 220, 200})
		settings := fmt.Sprintf("Mass: %.1f  Radius: %.1f  Locked: %v", g.addMass, g.addRadius, g.addLocked)
		text.Draw(screen, settings, basicfont.Face7x13, 12, 100, color.RGBA{200, 200, 200, 200})
	}

	// tooltip podczas pauzy
	if g.paused {
		mouse := mgl64.Vec2{float64(mx) - float64(screenWidth)/2, float64(my) - float64(screenHeight)/2}
		var hovered *physics.Body
		minD := 1e18
		for i := range g.sim.Bodies {
			b := &g.sim.Bodies[i]
			d := b.Pos.Sub(mouse).Len()
			if d <= b.Radius && d < minD {
				hovered = b
				minD = d
			}
		}
		if hovered != nil {
			lines := []string{
				fmt.Sprintf("Mass: %.3e", hovered.Mass),
				fmt.Sprintf("Pos: (%.2f, %.2f)", hovered.Pos.X(), hovered.Pos.Y()),
				fmt.Sprintf("Vel: (%.2f, %.2f)", hovered.Vel.X(), hovered.Vel.Y()),
				fmt.Sprintf("Radius: %.2f", hovered.Radius),
			}
			drawPanel(screen, lines, mx+12, my+12)
		}
	}
}

func drawShortcuts(screen *ebiten.Image, g *Game) {
	if !g.shortcutsVisible {
		return
	}
	// Zbierz linie kontekstowe (tylko klawisze, bez etykiet przyciskow)
	lines := []string{}
	if g.addMode {
		lines = append(lines, "ADD MODE")
		lines = append(lines, "L - toggle Locked (new body)")
		lines = append(lines, "Click - place new body")
		lines = append(lines, "K / =  - mass +")
		lines = append(lines, "J / -  - mass -")
		lines = append(lines, "R - radius +")
		lines = append(lines, "T - radius -")
		lines = append(lines, "H - hide shortcuts")
	} else {
		lines = append(lines, "GLOBAL")
		lines = append(lines, "P - Pause/Resume")
		lines = append(lines, "N - Step (when paused)")
		lines = append(lines, "B - toggle quadtree overlay")
		lines = append(lines, "H - hide shortcuts")
	}
	drawPanel(screen, lines, 12, 120)
}

// drawPanel rysuje półprzezroczysty panel z liniami tekstu.
func drawPanel(screen *ebiten.Image, lines []string, drawX, drawY int) {
	pad := 6
	charW := 7
	lineH := 14
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	w := maxLen*charW + pad*2
	h := len(lines)*lineH + pad*2

	panel := ebiten.NewImage(w, h)
	panel.Fill(color.RGBA{10, 10, 20, 200})
	inner := ebiten.NewImage(w-2, h-2)
	inner.Fill(color.RGBA{30, 30, 40, 80})
	opInner := &ebiten.DrawImageOptions{}
	opInner.GeoM.Translate(1, 1)
	panel.DrawImage(inner, opInner)

	for i, l := range lines {
		x := pad
		y := pad + (i+1)*lineH - 2
		text.Draw(panel, l, basicfont.Face7x13, x, y, color.RGBA{220, 220, 220, 255})
	}

	if drawX+w > screenWidth {
		drawX = screenWidth - w - 8
	}
	if drawY+h > screenHeight {
		drawY = screenHeight - h - 8
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(drawX), float64(drawY))
	screen.DrawImage(panel, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// resetSimulation przeładowuje konfigurację z initialConfigPath i resetuje stan gry
func (g *Game) resetSimulation() error {
	if g.initialConfigPath == "" {
		return fmt.Errorf("no initial config path set")
	}
	sim, err := simulation.LoadConfig(g.initialConfigPath)
	if err != nil {
		return err
	}
	g.sim = sim
	// reinit helper arrays
	g.lastPos = make([]mgl64.Vec2, len(g.sim.Bodies))
	g.trails = make([][]TrailSegment, len(g.sim.Bodies))
	for i := range g.sim.Bodies {
		g.lastPos[i] = g.sim.Bodies[i].Pos
		g.trails[i] = []TrailSegment{}
	}
	g.addMode = false
	g.paused = false
	log.WithField("env", g.sim.Name).Info("symulacja zresetowana")
	return nil
}

func main() {
	envName := flag.String("env", "solar", "Wybór środowiska (np. solar, binary, galaxy)")
	flag.Parse()
	configPath := filepath.Join("pkg/assets", fmt.Sprintf("%s.json", *envName))

	sim, err := simulation.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("błąd wczytywania środowiska")
	}
	log.WithFields(log.Fields{
		"env":    sim.Name,
		"bodies": len(sim.Bodies),
		"solver": sim.Solver.Method,
		"theta":  sim.Solver.Theta,
	}).Info("start symulacji")

	lastPos := make([]mgl64.Vec2, len(sim.Bodies))
	trails := make([][]TrailSegment, len(sim.Bodies))
	for i := range sim.Bodies {
		lastPos[i] = sim.Bodies[i].Pos
		trails[i] = []TrailSegment{}
	}
	game := &Game{
		sim:               sim,
		trails:            trails,
		lastPos:           lastPos,
		shortcutsVisible:  true,
		initialConfigPath: configPath,
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("N-Body Simulation - " + sim.Name)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func pointInRect(px, py, rx, ry, rw, rh int) bool {
	return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
}

func drawButton(screen *ebiten.Image, x, y, w, h int, label string, active bool, disabled bool, hover bool) {
	btn := ebiten.NewImage(w, h)
	bg := color.RGBA{20, 20, 20, 200}
	textColor := color.RGBA{240, 240, 240, 255}
	if disabled {
		bg = color.RGBA{60, 60, 60, 160}
		textColor = color.RGBA{160, 160, 160, 200}
	} else {
		if active {
			bg = color.RGBA{60, 120, 60, 220}
		}
		if hover {
			if active {
				bg = color.RGBA{100, 190, 100, 240}
			} else {
				bg = color.RGBA{90, 90, 90, 230}
			}
		}
	}
	btn.Fill(bg)
	inner := ebiten.NewImage(w-2, h-2)
	inner.Fill(color.RGBA{40, 40, 40, 120})
	opInner := &ebiten.DrawImageOptions{}
	opInner.GeoM.Translate(1, 1)
	btn.DrawImage(inner, opInner)
	charW := 7
	cw := len(label) * charW
	xText := (w - cw) / 2
	yText := (h + 8) / 2
	text.Draw(btn, label, basicfont.Face7x13, xText, yText, textColor)
	op2 := &ebiten.DrawImageOptions{}
	op2.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(btn, op2)
}
