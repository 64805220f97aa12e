package editline

// KeyAction represents the edit action performed when a key is pressed.
type KeyAction int

// Available key actions
const (
	ActionNone        KeyAction = iota
	ActionAccept                // Finish editing and return the line
	ActionInterrupt             // Abort with ErrInterrupted
	ActionEOFOrDelete           // ErrEOF on an empty line, delete under cursor otherwise
	ActionComplete              // Start or continue completion cycling
	ActionBackspace             // Delete the character before the cursor
	ActionDelete                // Delete the character under the cursor
	ActionClearLine             // Delete the whole line
	ActionDeleteToEnd           // Delete from the cursor to the end of the line
	ActionDeleteWord            // Delete the word before the cursor
	ActionMoveHome
	ActionMoveEnd
	ActionMoveLeft
	ActionMoveRight
	ActionHistoryPrev
	ActionHistoryNext
	ActionClearScreen // Clear the screen and redraw the line at the top
	ActionTranspose   // Swap the characters around the cursor
	ActionEscape      // Start of an escape sequence
)

var actionNames = map[KeyAction]string{
	ActionNone:        "none",
	ActionAccept:      "accept",
	ActionInterrupt:   "interrupt",
	ActionEOFOrDelete: "eof-or-delete",
	ActionComplete:    "complete",
	ActionBackspace:   "backspace",
	ActionDelete:      "delete",
	ActionClearLine:   "clear-line",
	ActionDeleteToEnd: "delete-to-end",
	ActionDeleteWord:  "delete-word",
	ActionMoveHome:    "move-home",
	ActionMoveEnd:     "move-end",
	ActionMoveLeft:    "move-left",
	ActionMoveRight:   "move-right",
	ActionHistoryPrev: "history-prev",
	ActionHistoryNext: "history-next",
	ActionClearScreen: "clear-screen",
	ActionTranspose:   "transpose",
	ActionEscape:      "escape",
}

// String returns the action name used in key code listings.
func (a KeyAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// KeyMap maps input bytes and escape sequences to key actions.
type KeyMap struct {
	bindings  map[byte]KeyAction
	sequences map[string]KeyAction
}

// NewDefaultKeyMap creates the default key bindings.
//
// Default key bindings:
//   - Enter: Accept the line
//   - Ctrl+C: Interrupt
//   - Ctrl+D: End of input on an empty line, delete character otherwise
//   - Tab: Completion
//   - Backspace, Ctrl+H: Delete character backwards
//   - Ctrl+U: Delete entire line
//   - Ctrl+K: Delete from cursor to end of line
//   - Ctrl+W: Delete word backwards
//   - Ctrl+A, Home: Move to beginning of line
//   - Ctrl+E, End: Move to end of line
//   - Ctrl+B, Ctrl+F, Left, Right: Move cursor
//   - Ctrl+P, Ctrl+N, Up, Down: Navigate history
//   - Ctrl+L: Clear screen
//   - Ctrl+T: Transpose characters
//   - Delete: Delete character under cursor
//
// Example:
//
//	keyMap := editline.NewDefaultKeyMap()
//	// Use Ctrl+G to clear the line as well
//	keyMap.Bind(0x07, editline.ActionClearLine)
//	s, err := editline.Start(os.Stdin, os.Stdout, "> ", editline.WithKeyMap(keyMap))
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[byte]KeyAction),
		sequences: make(map[string]KeyAction),
	}

	km.bindings['\r'] = ActionAccept
	km.bindings[0x03] = ActionInterrupt   // Ctrl+C
	km.bindings[0x04] = ActionEOFOrDelete // Ctrl+D
	km.bindings['\t'] = ActionComplete
	km.bindings[0x7f] = ActionBackspace
	km.bindings[0x08] = ActionBackspace   // Ctrl+H
	km.bindings[0x15] = ActionClearLine   // Ctrl+U
	km.bindings[0x0b] = ActionDeleteToEnd // Ctrl+K
	km.bindings[0x17] = ActionDeleteWord  // Ctrl+W
	km.bindings[0x01] = ActionMoveHome    // Ctrl+A
	km.bindings[0x05] = ActionMoveEnd     // Ctrl+E
	km.bindings[0x02] = ActionMoveLeft    // Ctrl+B
	km.bindings[0x06] = ActionMoveRight   // Ctrl+F
	km.bindings[0x10] = ActionHistoryPrev // Ctrl+P
	km.bindings[0x0e] = ActionHistoryNext // Ctrl+N
	km.bindings[0x0c] = ActionClearScreen // Ctrl+L
	km.bindings[0x14] = ActionTranspose   // Ctrl+T
	km.bindings[0x1b] = ActionEscape

	// Escape sequences, without the leading ESC
	km.sequences["[A"] = ActionHistoryPrev
	km.sequences["[B"] = ActionHistoryNext
	km.sequences["[C"] = ActionMoveRight
	km.sequences["[D"] = ActionMoveLeft
	km.sequences["[H"] = ActionMoveHome
	km.sequences["OH"] = ActionMoveHome
	km.sequences["[F"] = ActionMoveEnd
	km.sequences["OF"] = ActionMoveEnd
	km.sequences["[3~"] = ActionDelete

	return km
}

// Bind adds or updates the action for a single input byte.
// Binding a printable byte makes it perform the action instead of being
// inserted.
func (km *KeyMap) Bind(key byte, action KeyAction) {
	km.bindings[key] = action
}

// BindSequence adds or updates an escape sequence binding.
//
// The sequence should not include the initial ESC character. Sequences are
// two bytes long, or three when the second byte is a digit and the third is
// '~'.
//
// Example:
//
//	keyMap := editline.NewDefaultKeyMap()
//	// Page Up (ESC [ 5 ~) recalls older history
//	keyMap.BindSequence("[5~", editline.ActionHistoryPrev)
func (km *KeyMap) BindSequence(seq string, action KeyAction) {
	km.sequences[seq] = action
}

// GetAction returns the action for a key, or ActionNone if not bound
func (km *KeyMap) GetAction(key byte) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	if action, exists := km.bindings[key]; exists {
		return action
	}
	return ActionNone
}

// GetSequenceAction returns the action for an escape sequence, or ActionNone if not bound
func (km *KeyMap) GetSequenceAction(seq string) KeyAction {
	if km == nil || km.sequences == nil {
		return ActionNone
	}
	if action, exists := km.sequences[seq]; exists {
		return action
	}
	return ActionNone
}
