/*
Package healthsdk is the remote data gateway for the HealthMate API and the
home of the wire types shared by the server and its clients.

# Results, not errors

Every call returns a Result instead of an error. Transport failures,
timeouts and non-2xx responses all land in the OK=false branch with a human
readable message chosen, in order, from:

  - the server's "message" (or "error_description") field
  - the transport error text
  - GenericError

Callers decide what a failure means. The session and metric layers treat any
failed Result as "server unavailable" and fall back to the local store.

	gw := healthsdk.NewClient("http://localhost:5000", 0)

	auth, res := gw.Login(ctx, healthsdk.LoginRequest{Email: email, Password: pw})
	if !res.OK {
		// fall back to the local roster
	}
	gw.SetToken(auth.Token)

# Timeouts and credentials

NewClient applies DefaultTimeout (5s) to every request unless told
otherwise. The bearer token set with SetToken is attached to every request;
with no token the request goes out anonymous and the server decides whether
to serve it.

# Typed helpers

Each API route has a method returning the decoded body and the Result:

	logs, res := gw.RecordBMI(ctx, healthsdk.BMIRequest{Height: 170, Weight: 60})
	if res.OK {
		fmt.Println(logs.Latest.BMI) // 20.8
	}

Routes without a helper can be reached with Request or the generic Call.
*/
package healthsdk
