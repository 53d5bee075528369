package client

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/strikers/internal/draw"
	"github.com/tomz197/strikers/internal/loop/config"
	"github.com/tomz197/strikers/internal/loop/session"
	"github.com/tomz197/strikers/internal/object"
)

// Canvas palette slots.
const (
	colorPlayer1 draw.Color = iota + 1
	colorPlayer2
	colorEnemy
	colorBoss
	colorBullet
	colorEnemyBullet
	colorHeal
	colorPower
	colorSpeed
	colorNumber
	colorSpark
	colorSparkHot
)

var paletteHex = []string{
	"#00d7ff", // player 1
	"#ff87d7", // player 2
	"#ff5f00", // enemy
	"#af87ff", // boss
	"#ffff5f", // player bullet
	"#ff0000", // enemy bullet
	"#00ff5f", // heal
	"#ff8700", // power
	"#00afff", // speed
	"#d7d7d7", // number
	"#d75f00", // spark
	"#ffffaf", // hot spark
}

func newPalette(profile termenv.Profile) *draw.Palette {
	return draw.NewPalette(profile, paletteHex...)
}

func spriteColor(id object.SpriteID) draw.Color {
	switch id {
	case object.SpritePlayer1:
		return colorPlayer1
	case object.SpritePlayer2:
		return colorPlayer2
	case object.SpriteEnemy:
		return colorEnemy
	case object.SpriteBoss:
		return colorBoss
	case object.SpriteEnemyBullet:
		return colorEnemyBullet
	case object.SpriteItemHeal:
		return colorHeal
	case object.SpriteItemPower:
		return colorPower
	case object.SpriteItemSpeed:
		return colorSpeed
	case object.SpriteItemNumber:
		return colorNumber
	default:
		return colorBullet
	}
}

// styles are the text styles of menus and the HUD.
type styles struct {
	kill      lipgloss.Style
	loss      lipgloss.Style
	info      lipgloss.Style
	title     lipgloss.Style
	hint      lipgloss.Style
	gameOver  lipgloss.Style
	gameClear lipgloss.Style
}

func newStyles(w io.Writer, profile termenv.Profile) styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return styles{
		kill:      r.NewStyle().Foreground(lipgloss.Color("#ffff00")),
		loss:      r.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		info:      r.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		title:     r.NewStyle().Foreground(lipgloss.Color("#ffff00")).Bold(true),
		hint:      r.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),
		gameOver:  r.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true),
		gameClear: r.NewStyle().Foreground(lipgloss.Color("#ffff00")).Bold(true),
	}
}

// shape returns a sprite's outline in canvas points.
func (c *Client) shape(id object.SpriteID) []draw.Point {
	if pts, ok := c.shapes[id]; ok {
		return pts
	}
	unit := object.Shape(id)
	pts := make([]draw.Point, len(unit))
	for i, p := range unit {
		pts[i] = draw.Point{X: p.X, Y: p.Y}
	}
	c.shapes[id] = pts
	return pts
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear so UI
	// elements from the previous screen don't persist.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateEnding {
		c.drawField()
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawField draws the sprites of the latest snapshot in order, then sparks.
func (c *Client) drawField() {
	for _, sp := range c.snapshot.Sprites {
		c.placeBuf = draw.Place(c.placeBuf[:0], c.shape(sp.ID),
			float64(sp.X), float64(sp.Y), float64(sp.W), float64(sp.H), sp.Angle)
		c.canvas.FillPolygon(c.placeBuf, spriteColor(sp.ID))
	}

	c.particles.Each(func(p *object.Particle) {
		col := colorSpark
		if p.Hot {
			col = colorSparkHot
		}
		c.canvas.Set(p.X, p.Y, col)
	})
}

// drawUI draws text over the frame.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateMenu:
		c.drawMenuScreen(centerX, centerY)
	case GameStatePlaying:
		c.drawPlayingHUD()
	case GameStateEnding:
		c.drawPlayingHUD()
		c.drawEndingBanner(centerX, centerY)
	}
}

// writeCentered writes s centered on column centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.chunkWriter.WriteAt(max(centerX-lipgloss.Width(s)/2, 1), row, s)
}

// overlay writes s over the canvas and has the cells repainted next frame.
func (c *Client) overlay(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// drawMenuScreen draws the title screen.
func (c *Client) drawMenuScreen(centerX, centerY int) {
	st := c.styles
	top := centerY - 6

	c.writeCentered(centerX, top, st.title.Render("STRIKERS 2022"))
	c.writeCentered(centerX, top+2, st.info.Render("PRESS ENTER KEY"))
	c.writeCentered(centerX, top+3, st.info.Render("TO START THE GAME."))

	controls := []string{
		"PLAYER 1  arrows . . move   0  fire",
		"PLAYER 2  W A S D . move  SPACE fire",
		"Q  . . . . . . . . . . . . . . quit",
	}
	for i, line := range controls {
		c.writeCentered(centerX, top+6+i, st.hint.Render(line))
	}

	if c.state.Played > 0 {
		last := st.gameOver.Render("LAST GAME: GAME OVER")
		if c.state.Outcome == session.OutcomeVictory {
			last = st.gameClear.Render("LAST GAME: GAME CLEAR")
		} else if c.state.Outcome == session.OutcomeNone {
			last = st.hint.Render("LAST GAME: ABANDONED")
		}
		c.writeCentered(centerX, top+10, last)
	}
}

// drawPlayingHUD draws the in-game HUD over the top left of the field.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD() {
	st := c.styles
	snap := &c.snapshot

	line1 := st.kill.Render(fmt.Sprintf("KILL %-5d", snap.Stats.Kills)) + "  " +
		st.loss.Render(fmt.Sprintf("LOSS %-5d", snap.Stats.Missed)) + "  " +
		st.info.Render("TIME "+formatElapsed(snap.ElapsedSeconds))
	line2 := st.info.Render(fmt.Sprintf("PLAYERS HP %-5d BOSS HP %-5d ENEMY LV %-3d",
		snap.Stats.HP, snap.BossHP, snap.Stats.EnemyLevel))

	c.overlay(2, 1, line1)
	c.overlay(2, 2, line2)
}

// formatElapsed renders whole seconds as h:mm:ss.
func formatElapsed(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// drawEndingBanner announces the result of the finished session.
func (c *Client) drawEndingBanner(centerX, centerY int) {
	banner := c.styles.gameOver.Render("GAME OVER")
	if c.state.Outcome == session.OutcomeVictory {
		banner = c.styles.gameClear.Render("GAME CLEAR")
	}
	w := lipgloss.Width(banner)
	c.overlay(max(centerX-w/2, 1), centerY, banner)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, c.styles.title.Render("INACTIVITY WARNING"))

	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	msg := fmt.Sprintf("You will be disconnected in %3d seconds.", max(left, 0))
	c.writeCentered(centerX, centerY, c.styles.info.Render(msg))
	c.writeCentered(centerX, centerY+2, c.styles.hint.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, c.styles.gameOver.Render("SERVER SHUTTING DOWN"))

	msg := fmt.Sprintf("Disconnecting in %2d seconds.", max(int(c.state.shutdownTimer+0.999), 0))
	c.writeCentered(centerX, centerY, c.styles.info.Render(msg))
	c.writeCentered(centerX, centerY+2, c.styles.hint.Render("Thanks for playing!"))
}
