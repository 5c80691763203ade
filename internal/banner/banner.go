package banner

import "fmt"

const version = "1.0.0"

// Print displays the banner with optional silence.
func Print(silence bool) {
	if silence {
		return
	}
	fmt.Printf(`
      _            _                                _
  ___| | __ _  ___| | _____  ___  ___ __   ___  _ __| |_
 / __| |/ _' |/ __| |/ / _ \ \ \/ / '_ \ / _ \| '__| __|
 \__ \ | (_| | (__|   <  __/  >  <| |_) | (_) | |  | |_
 |___/_|\__,_|\___|_|\_\___| /_/\_\ .__/ \___/|_|   \__|
                                  |_|

slackexport v%s

`, version)
}
