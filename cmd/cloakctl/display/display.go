// Package display provides output formatting for cloakctl.
//
// All user-facing output goes through here: tables via text/tabwriter for
// humans, JSON with indentation for scripting. Display functions respect the
// global output format configuration and handle empty result sets gracefully.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cloak-dev/cloak/cmd/cloakctl/client"
	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
	"github.com/cloak-dev/cloak/internal/logging"
)

// DisplayHealth displays the daemon liveness report.
func DisplayHealth(health *client.HealthInfo) {
	if config.Global.Output == "json" {
		printJSON(health)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tVERSION\tUPTIME")
	fmt.Fprintf(w, "%s\t%s\t%s\n", health.Status, health.Version, health.Uptime)
	w.Flush()
}

// DisplayRealms displays realm information in tabular or JSON format.
func DisplayRealms(realms []client.Realm) {
	if len(realms) == 0 {
		if config.Global.Output == "json" {
			fmt.Println("[]")
		} else {
			fmt.Println("No realms found")
		}
		return
	}

	if config.Global.Output == "json" {
		printJSON(realms)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tENABLED\tCREATED")
	for _, r := range realms {
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n",
			r.Name, r.DisplayName, r.Enabled, r.CreatedAt.Format(time.RFC3339))
	}
	w.Flush()
}

// DisplayUserCount displays the user count for a realm.
func DisplayUserCount(realm string, count int) {
	if config.Global.Output == "json" {
		printJSON(map[string]any{"realm": realm, "count": count})
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REALM\tUSERS")
	fmt.Fprintf(w, "%s\t%d\n", realm, count)
	w.Flush()
}

// DisplayMembers displays cluster membership in tabular or JSON format.
func DisplayMembers(members []client.Member) {
	if len(members) == 0 {
		if config.Global.Output == "json" {
			fmt.Println("[]")
		} else {
			fmt.Println("No cluster members found")
		}
		return
	}

	if config.Global.Output == "json" {
		printJSON(members)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tSTATUS\tLAST SEEN")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			m.Name, m.Address, m.Status, m.LastSeen.Format(time.RFC3339))
	}
	w.Flush()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logging.Error("Failed to marshal JSON output: %v", err)
		return
	}
	fmt.Println(string(out))
}
