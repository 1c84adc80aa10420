/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/editor"
	"goscreenwriter/internal/store"
)

const editHelp = `Commands (one per line):
  add                        append an empty scene
  delete <scene-id>          remove a scene
  move <scene-id> up|down    swap a scene with its neighbor
  heading <scene-id> <text>  set the slugline
  action <scene-id> <text>   replace the action paragraph
  line <scene-id> <NAME>: <text>   add a dialogue line
  camera <scene-id> <text>   add a camera note
  undo | redo                step through edit history
  review                     print runtime status and defects
  save                       persist to the library
  quit                       save and exit`

// runEditLoop drives an interactive editing session for one stored script:
// each line of input is a command applied through editor.Session, the review
// is re-derived after every edit, and save/quit persist via the store.
func runEditLoop(ctx context.Context, st store.Store, id int64, in io.Reader, out io.Writer) error {
	s, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	sess := editor.NewSession(s, nil)
	fmt.Fprintf(out, "Editing #%d: %s (%d scenes). Type a command, or quit to finish.\n", s.ID, s.Title, len(s.Scenes))

	dirty := false
	persist := func() error {
		updated, err := st.Update(ctx, id, sess.Script())
		if err != nil {
			return err
		}
		dirty = false
		fmt.Fprintf(out, "Saved #%d.\n", updated.ID)
		return nil
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		cmd, rest, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		switch cmd {
		case "", "#":
			continue
		case "help":
			fmt.Fprintln(out, editHelp)
			continue
		case "undo":
			if sess.Undo() {
				dirty = true
				printReview(out, sess)
			} else {
				fmt.Fprintln(out, "Nothing to undo.")
			}
			continue
		case "redo":
			if sess.Redo() {
				dirty = true
				printReview(out, sess)
			} else {
				fmt.Fprintln(out, "Nothing to redo.")
			}
			continue
		case "review":
			printReview(out, sess)
			continue
		case "save":
			if err := persist(); err != nil {
				return err
			}
			continue
		case "quit":
			if dirty {
				return persist()
			}
			return nil
		}

		if err := applyEditCommand(sess, cmd, rest, out); err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		dirty = true
		printReview(out, sess)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if dirty {
		return persist()
	}
	return nil
}

// applyEditCommand parses one structural edit and runs it through the
// session. Unknown scene ids and malformed arguments come back as errors,
// leaving state and history untouched.
func applyEditCommand(sess *editor.Session, cmd, rest string, out io.Writer) error {
	return sess.Apply(func(s *domain.Script) error {
		switch cmd {
		case "add":
			id := editor.AddScene(s)
			fmt.Fprintf(out, "Added %s.\n", id)
			return nil
		case "delete":
			sceneID := strings.TrimSpace(rest)
			if !editor.DeleteScene(s, sceneID) {
				return fmt.Errorf("no scene %q", sceneID)
			}
			return nil
		case "move":
			sceneID, dir, _ := strings.Cut(strings.TrimSpace(rest), " ")
			var d editor.Direction
			switch strings.TrimSpace(dir) {
			case "up":
				d = editor.MoveUp
			case "down":
				d = editor.MoveDown
			default:
				return fmt.Errorf("move direction must be up or down")
			}
			if !editor.MoveScene(s, sceneID, d) {
				return fmt.Errorf("no scene %q", sceneID)
			}
			return nil
		case "heading":
			sceneID, text, err := splitSceneArg(rest)
			if err != nil {
				return err
			}
			if !editor.SetHeading(s, sceneID, text) {
				return fmt.Errorf("no scene %q", sceneID)
			}
			return nil
		case "action":
			sceneID, text, err := splitSceneArg(rest)
			if err != nil {
				return err
			}
			if !editor.SetAction(s, sceneID, text) {
				return fmt.Errorf("no scene %q", sceneID)
			}
			return nil
		case "line":
			sceneID, text, err := splitSceneArg(rest)
			if err != nil {
				return err
			}
			name, dialogue, ok := strings.Cut(text, ":")
			if !ok || strings.TrimSpace(name) == "" {
				return fmt.Errorf("line needs <NAME>: <text>")
			}
			dl := domain.DialogueLine{Character: strings.TrimSpace(name), Text: strings.TrimSpace(dialogue)}
			if editor.AddDialogueLine(s, sceneID, dl) < 0 {
				return fmt.Errorf("no scene %q", sceneID)
			}
			return nil
		case "camera":
			sceneID, text, err := splitSceneArg(rest)
			if err != nil {
				return err
			}
			if !editor.AddCameraNote(s, sceneID, text) {
				return fmt.Errorf("no scene %q", sceneID)
			}
			return nil
		default:
			return fmt.Errorf("unknown command %q (try help)", cmd)
		}
	})
}

func splitSceneArg(rest string) (sceneID, text string, err error) {
	sceneID, text, ok := strings.Cut(strings.TrimSpace(rest), " ")
	if !ok || strings.TrimSpace(text) == "" {
		return "", "", fmt.Errorf("need <scene-id> and text")
	}
	return sceneID, strings.TrimSpace(text), nil
}

func printReview(out io.Writer, sess *editor.Session) {
	r := sess.Review()
	fmt.Fprintf(out, "Runtime %s (%s)", r.Status.Formatted, r.Status.Band)
	if editor.Clean(r.Defects) {
		fmt.Fprintln(out, ", no defects.")
		return
	}
	fmt.Fprintln(out, ":")
	ids := make([]string, 0, len(r.Defects))
	for id := range r.Defects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, d := range r.Defects[id] {
			fmt.Fprintf(out, "  %s: %s\n", id, d)
		}
	}
}
