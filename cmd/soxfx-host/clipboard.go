// clipboard.go - copy a persistence block to the OS clipboard

package main

import (
	"golang.design/x/clipboard"

	"github.com/prof-spock/soxplugins-go"
)

// copyPersistenceToClipboard serializes host's effect and pushes the
// block to the system clipboard, the console-mode analogue of the
// teacher's GUI frontends copying emulator state via the same library.
func copyPersistenceToClipboard(host *EffectHost) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	effect := host.Effect()
	block := soxplugins.Serialize(effect.Name(), effect.ParameterMap(), effect.ParameterMap().ParameterNameList())
	clipboard.Write(clipboard.FmtText, []byte(block))
	return nil
}
