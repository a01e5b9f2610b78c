package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckBaselineCompatibility reports whether results recorded by baselineVersion can be
// compared with results from engineVersion. Metric definitions only change between minor
// releases, so major and minor must match while patch may differ. A "main" development
// build on either side skips the check.
//
// Examples:
//   - Engine 1.2.1, Baseline 1.2.0 -> OK
//   - Engine 1.3.0, Baseline 1.2.0 -> ERROR (minor differs)
//   - Engine main, Baseline 1.2.0 -> OK
func CheckBaselineCompatibility(engineVersion, baselineVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	baselineVersion = strings.TrimPrefix(baselineVersion, "v")

	if engineVersion == "main" || baselineVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	baselineSemver, err := semver.NewVersion(baselineVersion)
	if err != nil {
		return fmt.Errorf("invalid baseline version '%s': %w", baselineVersion, err)
	}

	if engineSemver.Major() != baselineSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but baseline was recorded by %d.x.x",
			engineSemver.Major(), baselineSemver.Major())
	}

	if engineSemver.Minor() != baselineSemver.Minor() {
		return fmt.Errorf("minor version mismatch: engine is %d.%d.x but baseline was recorded by %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			baselineSemver.Major(), baselineSemver.Minor())
	}

	return nil
}
