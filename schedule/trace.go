// Copyright 2025 Tiramisu Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schedule

import (
	"fmt"
	"os"

	"github.com/SharmaRithik/tiramisu/ir"
)

// debugSchedule enables debug output for schedule rewrites; the
// per-context Trace flag enables it for one compilation only.
var debugSchedule = os.Getenv("DEBUG_SCHEDULE") != ""

func tracef(comp *ir.Computation, format string, args ...any) {
	if debugSchedule || comp.Context().Trace {
		fmt.Printf("[schedule] "+format+"\n", args...)
	}
}
