// Package errors provides structured error types for the jnibind module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, Go/Java type names, and cause chain.
//
// The taxonomy maps onto the failure modes of a JNI boundary:
//
//	lookup        KindNotFound         class, method or field missing, descriptor mismatch
//	conversion    KindInvalidEncoding  string could not be decoded
//	              KindInvalidInput     invalid array length
//	              KindOutOfBounds      array index outside the array
//	runtime       KindException        the JVM raised an exception during a call
//	misuse        KindTypeMismatch     Value paired with a Type of another kind
//	              KindExpired          handle used after its native call returned
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("Widget", "resize", "arg0").
//		GoType("jni.Value(long)").
//		JavaType("I").
//		Detail("argument kind does not match descriptor").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound("method", "callback", "(ILjava/lang/String;)V")
//	err := errors.OutOfBounds(errors.PhaseArray, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with an empty Phase matches on Kind alone:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindNotFound})
package errors
