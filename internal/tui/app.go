package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ElectricFeet/gutenberg/internal/blocks"
	"github.com/ElectricFeet/gutenberg/internal/config"
	"github.com/ElectricFeet/gutenberg/internal/database"
	"github.com/ElectricFeet/gutenberg/internal/database/repository"
	"github.com/ElectricFeet/gutenberg/internal/history"
	"github.com/ElectricFeet/gutenberg/internal/prefs"
	"github.com/ElectricFeet/gutenberg/internal/state"
	"github.com/ElectricFeet/gutenberg/internal/store"
)

// App is the editor shell: it renders the store's state tree and turns key
// presses into dispatched actions. All document logic lives in the
// reducers; the App never mutates state directly.
type App struct {
	ctx      context.Context
	cfg      config.Config
	store    *store.Store
	registry *blocks.Registry
	repos    Repos

	postID   string
	modal    modalState
	inserter *Inserter
	input    string
	status   string
	width    int
}

type Repos struct {
	Posts    *repository.PostRepo
	Reusable *repository.ReusableBlockRepo
}

type modalState string

const (
	modalNone      modalState = ""
	modalInserter  modalState = "inserter"
	modalEditTitle modalState = "editTitle"
)

type savedMsg struct {
	post  repository.Post
	isNew bool
}

type reusableMsg []state.ReusableBlock

type reusableSavedMsg struct {
	tempID  string
	finalID string
}

type reusableFailedMsg struct {
	tempID string
	err    error
}

type errMsg struct{ err error }

func New(ctx context.Context, cfg config.Config, st *store.Store, registry *blocks.Registry, repos Repos, postID string) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		store:    st,
		registry: registry,
		repos:    repos,
		postID:   postID,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadReusableBlocks()
}

func (a *App) loadReusableBlocks() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Reusable.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		out := make([]state.ReusableBlock, 0, len(rows))
		for _, row := range rows {
			parsed := blocks.Parse(row.Content)
			if len(parsed) == 0 {
				continue
			}
			out = append(out, state.ReusableBlock{ID: row.ID, Title: row.Title, Block: parsed[0]})
		}
		return reusableMsg(out)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.store.Dispatch(state.UpdateMobileState{IsMobile: m.Width < 80})
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleEditorKey(m)
	case reusableMsg:
		a.store.Dispatch(state.FetchReusableBlocksSuccess{ReusableBlocks: m})
	case reusableSavedMsg:
		a.store.Dispatch(state.SaveReusableBlockSuccess{ID: m.tempID, UpdatedID: m.finalID})
	case reusableFailedMsg:
		a.store.Dispatch(state.SaveReusableBlockFailure{ID: m.tempID})
		a.status = m.err.Error()
	case savedMsg:
		a.postID = m.post.ID
		a.status = ""
		a.store.Dispatch(state.SavePostSuccess{IsNew: m.isNew})
		// adopt the saved snapshot: reconciles the overlay and rebases the
		// dirty baseline
		a.store.Dispatch(state.ResetPost{Post: postToState(m.post)})
		a.store.Dispatch(state.CreateNotice{Notice: state.Notice{
			ID: "save", Status: "success", Content: "Post saved", IsDismissible: true,
		}})
	case errMsg:
		a.store.Dispatch(state.SavePostFailure{Err: m.err})
		a.status = m.err.Error()
	}
	return a, nil
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		_ = prefs.Save(a.store.State().Preferences)
		return a, tea.Quit
	case "up", "k":
		a.selectNeighbor(-1)
	case "down", "j":
		a.selectNeighbor(1)
	case "shift+up", "K":
		if blk, ok := a.store.SelectedBlock(); ok {
			a.store.Dispatch(state.MoveBlocksUp{First: blk.UID, Last: blk.UID})
		}
	case "shift+down", "J":
		if blk, ok := a.store.SelectedBlock(); ok {
			a.store.Dispatch(state.MoveBlocksDown{First: blk.UID, Last: blk.UID})
		}
	case "d":
		if blk, ok := a.store.SelectedBlock(); ok {
			a.selectNeighbor(1)
			a.store.Dispatch(state.RemoveBlocks{UIDs: []string{blk.UID}})
		}
	case "esc":
		a.store.Dispatch(state.ClearSelectedBlock{})
	case "i":
		idx := a.insertIndex()
		a.store.Dispatch(state.ShowInsertionPoint{Index: &idx})
		a.inserter = NewInserter(a.registry, a.store.State().Preferences)
		a.modal = modalInserter
	case "t":
		a.modal = modalEditTitle
		a.input = stringField(a.store.EditedPostField("title"))
		a.store.Dispatch(state.StartTyping{})
	case "m":
		if blk, ok := a.store.SelectedBlock(); ok {
			a.store.Dispatch(state.ToggleBlockMode{UID: blk.UID})
		}
	case "v":
		next := state.ModeText
		if a.store.State().Preferences.Mode == state.ModeText {
			next = state.ModeVisual
		}
		a.store.Dispatch(state.SwitchMode{Mode: next})
	case "o":
		a.store.Dispatch(state.ToggleSidebar{Sidebar: "desktop"})
	case "u":
		a.store.Dispatch(history.Undo{})
	case "r":
		a.store.Dispatch(history.Redo{})
	case "c":
		if blk, ok := a.store.SelectedBlock(); ok && blk.Name != blocks.ReusableRef {
			return a, a.convertToReusable(blk)
		}
	case "p":
		panel := "block"
		if a.store.State().ActivePanel == "block" {
			panel = "document"
		}
		a.store.Dispatch(state.SetActivePanel{Panel: panel})
	case "n":
		if notices := a.store.State().Notices; len(notices) > 0 {
			a.store.Dispatch(state.RemoveNotice{ID: notices[0].ID})
		}
	case "s":
		if !a.store.IsSavingPost() {
			a.store.Dispatch(state.SavePostStart{})
			a.status = "saving..."
			return a, a.saveCmd()
		}
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.String()
	switch a.modal {
	case modalInserter:
		res := a.inserter.HandleKey(key)
		switch res.Action {
		case MenuActionSelected:
			a.insertType(res.Item.Name)
			a.closeInserter()
		case MenuActionCancelled:
			a.closeInserter()
		}
	case modalEditTitle:
		switch key {
		case "enter":
			a.store.Dispatch(state.EditPost{Edits: map[string]any{"title": a.input}})
			a.closeTitleEditor()
		case "esc":
			a.closeTitleEditor()
		case "backspace":
			if len(a.input) > 0 {
				a.input = a.input[:len(a.input)-1]
			}
		default:
			if isPrintableASCIIKey(key) {
				a.input += key
			}
		}
	}
	return a, nil
}

func (a *App) closeInserter() {
	a.store.Dispatch(state.HideInsertionPoint{})
	a.modal = modalNone
	a.inserter = nil
}

func (a *App) closeTitleEditor() {
	a.store.Dispatch(state.StopTyping{})
	a.modal = modalNone
	a.input = ""
}

func (a *App) insertType(name string) {
	blk := blocks.New(name, nil)
	ip := a.store.State().InsertionPoint
	a.store.Dispatch(state.InsertBlocks{Blocks: []blocks.Block{blk}, Index: ip.Index})
}

// insertIndex is the position new blocks go to: after the selected block,
// or at the end of the document.
func (a *App) insertIndex() int {
	if blk, ok := a.store.SelectedBlock(); ok {
		if i := a.store.BlockIndex(blk.UID); i >= 0 {
			return i + 1
		}
	}
	return len(a.store.Document().BlockOrder)
}

func (a *App) selectNeighbor(delta int) {
	order := a.store.Document().BlockOrder
	if len(order) == 0 {
		return
	}
	blk, ok := a.store.SelectedBlock()
	if !ok {
		a.store.Dispatch(state.SelectBlock{UID: order[0]})
		return
	}
	i := a.store.BlockIndex(blk.UID) + delta
	if i < 0 || i >= len(order) {
		return
	}
	a.store.Dispatch(state.SelectBlock{UID: order[i]})
}

// convertToReusable replaces the selected block with a core/block
// placement referencing a new reusable definition under a temporary id, then
// persists the definition. The saved message carries the final id so the
// reducers can rewrite every placement.
func (a *App) convertToReusable(blk blocks.Block) tea.Cmd {
	tempID := "temp-" + uuid.NewString()
	title := blockSummary(blk)
	if title == "" {
		title = blk.Name
	}
	rb := state.ReusableBlock{ID: tempID, Title: title, Block: blk}
	ref := blocks.New(blocks.ReusableRef, blocks.Attributes{"ref": tempID})
	a.store.Dispatch(state.UpdateReusableBlock{ID: tempID, ReusableBlock: rb})
	a.store.Dispatch(state.ReplaceBlocks{UIDs: []string{blk.UID}, Blocks: []blocks.Block{ref}})
	a.store.Dispatch(state.SaveReusableBlock{ID: tempID})
	return func() tea.Msg {
		finalID := uuid.NewString()
		err := a.repos.Reusable.Upsert(a.ctx, repository.ReusableBlock{
			ID:        finalID,
			Title:     rb.Title,
			Content:   blocks.Serialize([]blocks.Block{rb.Block}),
			UpdatedAt: database.Now(),
		})
		if err != nil {
			return reusableFailedMsg{tempID: tempID, err: err}
		}
		return reusableSavedMsg{tempID: tempID, finalID: finalID}
	}
}

func (a *App) saveCmd() tea.Cmd {
	id := a.postID
	isNew := id == ""
	if isNew {
		id = uuid.NewString()
	}
	post := repository.Post{
		ID:        id,
		Title:     stringField(a.store.EditedPostField("title")),
		Content:   a.store.EditedContent(),
		Status:    stringField(a.store.EditedPostField("status")),
		Type:      a.cfg.Editor.DefaultPostType,
		UpdatedAt: database.Now(),
	}
	if post.Status == "" {
		post.Status = a.cfg.Editor.DefaultStatus
	}
	return func() tea.Msg {
		if isNew {
			post.CreatedAt = post.UpdatedAt
		} else if prev, err := a.repos.Posts.Get(a.ctx, id); err == nil {
			post.CreatedAt = prev.CreatedAt
		} else {
			post.CreatedAt = post.UpdatedAt
		}
		if err := a.repos.Posts.Upsert(a.ctx, post); err != nil {
			return errMsg{err}
		}
		return savedMsg{post: post, isNew: isNew}
	}
}

func postToState(p repository.Post) state.Post {
	return state.Post{
		"id":      p.ID,
		"title":   p.Title,
		"content": p.Content,
		"status":  p.Status,
		"type":    p.Type,
	}
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var body string
	if a.store.State().Preferences.Mode == state.ModeText {
		body = a.renderTextMode()
	} else {
		body = a.renderBlockList()
	}
	if a.store.State().Preferences.Sidebars["desktop"] {
		body += "\n" + a.renderSidebar()
	}
	for _, n := range a.store.State().Notices {
		body += "\n" + fmt.Sprintf("[%s] %s", n.Status, n.Content)
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) renderHeader() string {
	title := stringField(a.store.EditedPostField("title"))
	if title == "" {
		title = "(untitled)"
	}
	out := titleStyle.Render(title)
	if a.store.IsDirty() {
		out += " " + selectedStyle.Render("*")
	}
	if a.store.IsSavingPost() {
		out += dimStyle.Render("  saving")
	}
	return out
}

func (a *App) renderBlockList() string {
	out := a.renderHeader() + "\n"
	ip := a.store.State().InsertionPoint
	list := a.store.Blocks()
	for i, blk := range list {
		if ip.Visible && ip.Index != nil && *ip.Index == i {
			out += dimStyle.Render("▸ insert here") + "\n"
		}
		out += a.renderBlock(blk) + "\n"
	}
	if ip.Visible && (ip.Index == nil || *ip.Index >= len(list)) {
		out += dimStyle.Render("▸ insert here") + "\n"
	}
	out += a.renderFooter()
	return out
}

func (a *App) renderBlock(blk blocks.Block) string {
	marker := " "
	if sel, ok := a.store.SelectedBlock(); ok && sel.UID == blk.UID {
		marker = "▶"
	}
	icon := ""
	if t, ok := a.registry.Get(blk.Name); ok && a.cfg.UI.ShowIcons {
		icon = t.Icon + " "
	}
	line := fmt.Sprintf("%s %s%-18s %s", marker, icon, blk.Name, blockSummary(blk))
	if a.store.BlockMode(blk.UID) == state.ModeHTML {
		line += dimStyle.Render("  [html]")
	}
	if marker == "▶" {
		return selectedStyle.Render(line)
	}
	return line
}

func blockSummary(blk blocks.Block) string {
	if v, ok := blk.Attributes["content"].(string); ok {
		if len(v) > 48 {
			v = v[:48] + "…"
		}
		return v
	}
	if len(blk.InnerBlocks) > 0 {
		return fmt.Sprintf("(%d inner)", len(blk.InnerBlocks))
	}
	return ""
}

func (a *App) renderTextMode() string {
	return a.renderHeader() + "\n" + a.store.EditedContent() + "\n" + a.renderFooter()
}

func (a *App) renderSidebar() string {
	st := a.store.State()
	lines := []string{dimStyle.Render("— " + st.ActivePanel + " —")}
	lines = append(lines, "status: "+stringField(a.store.EditedPostField("status")))
	lines = append(lines, fmt.Sprintf("blocks: %d", len(a.store.Document().BlockOrder)))
	lines = append(lines, fmt.Sprintf("undo: %v  redo: %v", a.store.CanUndo(), a.store.CanRedo()))
	return strings.Join(lines, "\n")
}

func (a *App) renderFooter() string {
	return dimStyle.Render("[i] Insert  [d] Delete  [J/K] Move  [u] Undo  [r] Redo  [c] Make reusable  [t] Title  [m] Block mode  [v] Visual/text  [o] Sidebar  [s] Save  [q] Quit")
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalInserter:
		out := titleStyle.Render("Insert block") + "\n"
		out += "search: " + a.inserter.Query() + "\n"
		for _, item := range a.inserter.Menu().Items() {
			marker := " "
			if a.inserter.Menu().IsCurrent(item.Name) {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %s %s\n", marker, item.Icon, item.Title)
		}
		out += dimStyle.Render("[enter] Insert  [esc] Cancel")
		return out
	case modalEditTitle:
		return titleStyle.Render("Title") + "\n" + a.input + "█\n" + dimStyle.Render("[enter] Apply  [esc] Cancel")
	}
	return ""
}
