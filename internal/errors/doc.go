// Package errors provides structured errors for the rpg-arena service.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// metadata. Codes map onto HTTP statuses so the web layer can translate any
// error coming out of an orchestrator without inspecting it further.
//
// # Basic Usage
//
//	err := errors.NotFound("weapon not found").WithMeta("weapon", name)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load fight session")
//	}
//
// Wrap keeps the code of an existing *Error, so a NotFound raised by a
// repository stays a NotFound after the orchestrator adds its own context.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("unit_class", input.ClassName, vb)
//	errors.ValidateNonNegative("damage", weapon.Damage, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound for missing or expired records
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Return InvalidArgument for bad selections
//   - Return FailedPrecondition when a fight has not been started
//
// Handler layer:
//   - Translate with Code.HTTPStatus and render GetMessage to the client
//   - Log internal errors
package errors
