// Package toolchain classifies C compilers and derives the capability
// flags annotation resolution consumes.
// Invariants:
//   - Capabilities is pure: equal profiles yield equal flag sets.
//   - Unrecognized compilers degrade to FamilyUnknown (all flags off);
//     classification itself never fails.
//   - Clang capabilities come from extension probes, never from version
//     numbers; GCC capabilities come from version numbers alone.
//   - NonNull is an explicit opt-in. It is never derived from family or
//     version.
package toolchain
