// Package process executes node actions as allow-listed local commands.
//
// An actions file maps action names to commands:
//
//	actions:
//	  - name: place_order
//	    command: ./scripts/order.sh
//	    env:
//	      SHOP: demo
//
// The process receives the session id, node id, last utterance and every
// filled slot as TENDRIL_* environment variables. Slot names are upper-cased
// and non-ASCII runes are hex encoded, so 尺码 becomes TENDRIL_SLOT__5C3A_7801.
package process
