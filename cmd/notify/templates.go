package main

const createUserTemplate = `<!DOCTYPE html>
<html>
  <body>
    <p>Hi {{.fullName}},</p>
    <p>An account has been created for you on the CrewDesk staffing system.</p>
    <p>Username: <strong>{{.username}}</strong></p>
    <p>Temporary password: <strong>{{.password}}</strong></p>
    <p>Please sign in and change your password as soon as possible.</p>
  </body>
</html>`

const resetPasswordTemplate = `<!DOCTYPE html>
<html>
  <body>
    <p>Hi {{.fullName}},</p>
    <p>Your one-time code for resetting your password is:</p>
    <p><strong>{{.otp}}</strong></p>
    <p>The code expires in {{.expiration}} minutes. If you did not request a
    reset, you can ignore this message.</p>
  </body>
</html>`

const timesheetEventTemplate = `<!DOCTYPE html>
<html>
  <body>
    <p>Hi {{.fullName}},</p>
    <p>The timesheet for <strong>{{.jobName}}</strong> changed: {{.event}}.</p>
    {{if .reason}}<p>Reason: {{.reason}}</p>{{end}}
    <p>Sign in to CrewDesk to review it.</p>
  </body>
</html>`
